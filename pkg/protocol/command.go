package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is the incoming envelope on the "{robot_id}.cmd" routing key.
// Params is kept as raw JSON because its shape depends on TaskType; callers
// parse it with ParseParams once the task type is known.
type Command struct {
	TaskID   string          `json:"task_id"`
	TaskType TaskType        `json:"task_type"`
	Params   json.RawMessage `json:"params"`
}

// ParseCommand decodes a command envelope from its wire JSON. Unknown
// top-level fields are ignored (the default behavior of encoding/json).
func ParseCommand(body []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(body, &cmd); err != nil {
		return Command{}, fmt.Errorf("parsing command envelope: %w", err)
	}
	if cmd.TaskID == "" {
		return Command{}, fmt.Errorf("command envelope missing task_id")
	}
	if cmd.TaskType == "" {
		return Command{}, fmt.Errorf("command envelope missing task_type")
	}
	return cmd, nil
}
