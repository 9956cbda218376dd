package protocol

// Result is the outgoing envelope on the "{robot_id}.result" routing key.
// Exactly one is published per command, except when the scenario selector
// decides "vanish" (§4.6).
type Result struct {
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	TaskID  string          `json:"task_id"`
	Updates []EntityUpdate  `json:"updates"`
	Images  []CapturedImage `json:"images,omitempty"`
}

// Success builds a 200 result from the given updates (and optional
// images). Updates is always non-nil so it serializes as "[]" rather than
// "null".
func Success(taskID string, updates []EntityUpdate, images ...CapturedImage) Result {
	if updates == nil {
		updates = []EntityUpdate{}
	}
	r := Result{Code: CodeSuccess, Msg: "ok", TaskID: taskID, Updates: updates}
	if len(images) > 0 {
		r.Images = images
	}
	return r
}

// Failure builds a failure result carrying no updates, per the invariant
// that failed and refused commands never mutate the world model.
func Failure(taskID string, code int, msg string) Result {
	return Result{Code: code, Msg: msg, TaskID: taskID, Updates: []EntityUpdate{}}
}

// LogEnvelope is the shape published on the "{robot_id}.log" routing key
// for each intermediate update. It has the same shape as a single-entry
// result, typically with Code 200.
type LogEnvelope struct {
	Code    int            `json:"code"`
	Msg     string         `json:"msg"`
	TaskID  string         `json:"task_id"`
	Updates []EntityUpdate `json:"updates"`
}

// Log wraps a single intermediate update as a log envelope.
func Log(taskID string, update EntityUpdate) LogEnvelope {
	return LogEnvelope{Code: CodeSuccess, Msg: "progress", TaskID: taskID, Updates: []EntityUpdate{update}}
}
