package generators

import (
	"testing"
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/stretchr/testify/assert"
)

func TestSourceDelayRespectsFloor(t *testing.T) {
	s := NewSeededSource(1, 2)
	d := s.Delay(0, 0.01, 1.0, 2.0)
	assert.GreaterOrEqual(t, d, 2*time.Second)
}

func TestSourceDelayAppliesMultiplier(t *testing.T) {
	s := NewSeededSource(1, 2)
	for i := 0; i < 20; i++ {
		d := s.Delay(10, 10, 0.01, 0)
		assert.InDelta(t, 0.1, d.Seconds(), 0.001)
	}
}

func TestCCDurationSumsRunAndPurge(t *testing.T) {
	d := CCDuration(protocol.StartCCParams{RunMinutes: 30, AirPurgeMinutes: 5})
	assert.Equal(t, 35*time.Minute, d)
}

func TestCCDurationZeroRunMinutesSkipsNothingNegative(t *testing.T) {
	d := CCDuration(protocol.StartCCParams{RunMinutes: 0, AirPurgeMinutes: 0})
	assert.Equal(t, time.Duration(0), d)
}

func TestEvaporationDurationUsesLatestTrigger(t *testing.T) {
	p := protocol.StartEvaporationParams{
		Profiles: protocol.EvaporationProfiles{Updates: []protocol.ProfileUpdate{
			{TimeFromStart: 10},
			{TimeFromStart: 45},
			{TimeFromStart: 20},
		}},
	}
	assert.Equal(t, 45*time.Minute, EvaporationDuration(p))
}

func TestEvaporationDurationFallsBackTo60Minutes(t *testing.T) {
	d := EvaporationDuration(protocol.StartEvaporationParams{})
	assert.Equal(t, 60*time.Minute, d)
}

func TestIntermediateIntervalFloors(t *testing.T) {
	d := IntermediateInterval(2*time.Second, 0.01, 500*time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestCollectFractionsDurationAllZero(t *testing.T) {
	d := CollectFractionsDuration([]bool{false, false, false})
	assert.Equal(t, 10*time.Second, d)
}

func TestCollectFractionsDurationCountsTrue(t *testing.T) {
	d := CollectFractionsDuration([]bool{true, false, true, true})
	assert.Equal(t, 19*time.Second, d)
}

func TestNewImageURLFormat(t *testing.T) {
	at := time.Date(2026, 7, 29, 10, 30, 0, 123000000, time.UTC)
	img := NewImage("https://images.example.com", "ws1", "re-buchi-r180_001", "evaporator", "screen", at)
	assert.Equal(t, "https://images.example.com/ws1/re-buchi-r180_001/screen/2026-07-29_10-30-00.123.jpg", img.URL)
	assert.Equal(t, "2026-07-29_10-30-00.123", img.CreateTime)
}

func TestNewImagesOneEntryPerComponent(t *testing.T) {
	at := time.Now()
	images := NewImages("base", "ws1", "dev1", "evaporator", []string{"screen", "tray"}, at)
	assert.Len(t, images, 2)
	assert.Equal(t, "screen", images[0].Component)
	assert.Equal(t, "tray", images[1].Component)
}

func TestNewImagesEmptyComponentsYieldsEmptySlice(t *testing.T) {
	images := NewImages("base", "ws1", "dev1", "evaporator", nil, time.Now())
	assert.Len(t, images, 0)
}
