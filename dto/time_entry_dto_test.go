package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestManualEntryBindingAllowsZeroDuration(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	zero := int64(0)
	err := v.Struct(ManualEntryRequest{
		TaskID:    2,
		StartTime: "2026-03-15 09:00:00",
		EndTime:   "2026-03-15 09:00:00",
		Duration:  &zero,
	})
	assert.NoError(t, err)
}

func TestManualEntryBindingStillRequiresDuration(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(ManualEntryRequest{
		TaskID:    2,
		StartTime: "2026-03-15 09:00:00",
		EndTime:   "2026-03-15 10:00:00",
	})
	assert.Error(t, err)
}

func TestManualEntryBindingRejectsNegativeDuration(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	negative := int64(-1)
	err := v.Struct(ManualEntryRequest{
		TaskID:    2,
		StartTime: "2026-03-15 09:00:00",
		EndTime:   "2026-03-15 10:00:00",
		Duration:  &negative,
	})
	assert.Error(t, err)
}
