package scenario

import (
	"testing"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/stretchr/testify/assert"
)

func TestSelectVanishesWhenTimeoutRateIsOne(t *testing.T) {
	s := New(generators.NewSeededSource(1, 2), 0, 1.0, DefaultSuccess, DefaultTable())
	for i := 0; i < 20; i++ {
		outcome, _ := s.Select(protocol.TaskStartCC)
		assert.Equal(t, OutcomeVanish, outcome)
	}
}

func TestSelectNeverVanishesOrFailsWhenRatesAreZero(t *testing.T) {
	s := New(generators.NewSeededSource(3, 4), 0, 0, DefaultSuccess, DefaultTable())
	for i := 0; i < 20; i++ {
		outcome, _ := s.Select(protocol.TaskStartCC)
		assert.Equal(t, OutcomeSuccess, outcome)
	}
}

func TestSelectFailsWhenFailureRateIsOneAndTimeoutIsZero(t *testing.T) {
	s := New(generators.NewSeededSource(5, 6), 1.0, 0, DefaultSuccess, DefaultTable())
	outcome, entry := s.Select(protocol.TaskStartCC)
	assert.Equal(t, OutcomeFail, outcome)
	assert.GreaterOrEqual(t, entry.Code, protocol.BandStartCC)
	assert.Less(t, entry.Code, protocol.BandStartCC+10)
}

func TestSelectTimeoutIsCheckedBeforeFailure(t *testing.T) {
	s := New(generators.NewSeededSource(7, 8), 1.0, 1.0, DefaultSuccess, DefaultTable())
	for i := 0; i < 20; i++ {
		outcome, _ := s.Select(protocol.TaskStartCC)
		assert.Equal(t, OutcomeVanish, outcome)
	}
}

func TestSelectDefaultScenarioTimeoutAppliesWhenNoRateFires(t *testing.T) {
	s := New(generators.NewSeededSource(9, 10), 0, 0, DefaultTimeout, DefaultTable())
	outcome, _ := s.Select(protocol.TaskStartCC)
	assert.Equal(t, OutcomeVanish, outcome)
}

func TestSelectDefaultScenarioFailureAppliesWhenNoRateFires(t *testing.T) {
	s := New(generators.NewSeededSource(11, 12), 0, 0, DefaultFailure, DefaultTable())
	outcome, entry := s.Select(protocol.TaskCollectFractions)
	assert.Equal(t, OutcomeFail, outcome)
	assert.GreaterOrEqual(t, entry.Code, protocol.BandCollectFractions)
	assert.Less(t, entry.Code, protocol.BandCollectFractions+10)
}

func TestPickFailureFallsBackWhenTableHasNoEntryForTask(t *testing.T) {
	s := New(generators.NewSeededSource(13, 14), 1.0, 0, DefaultSuccess, Table{})
	outcome, entry := s.Select(protocol.TaskSetupCartridges)
	assert.Equal(t, OutcomeFail, outcome)
	assert.Equal(t, 1009, entry.Code)
}

func TestDefaultTableCoversEveryDispatchableTask(t *testing.T) {
	table := DefaultTable()
	for _, taskType := range []protocol.TaskType{
		protocol.TaskSetupCartridges,
		protocol.TaskSetupTubeRack,
		protocol.TaskTakePhoto,
		protocol.TaskStartCC,
		protocol.TaskTerminateCC,
		protocol.TaskCollectFractions,
		protocol.TaskStartEvaporation,
	} {
		assert.NotEmpty(t, table[taskType], "missing failure band for %s", taskType)
	}
}
