package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{name: "full", iso: "PT1H2M3S", want: "1:02:03"},
		{name: "minutes and seconds", iso: "PT4M5S", want: "4:05"},
		{name: "seconds only", iso: "PT45S", want: "0:45"},
		{name: "minutes only", iso: "PT10M", want: "10:00"},
		{name: "hours only", iso: "PT2H", want: "2:00:00"},
		{name: "hours and seconds", iso: "PT1H5S", want: "1:00:05"},
		{name: "long hours", iso: "PT11H59M59S", want: "11:59:59"},
		{name: "empty", iso: "", want: "0:00"},
		{name: "garbage", iso: "not-a-duration", want: "0:00"},
		{name: "days unsupported", iso: "P1DT2H", want: "0:00"},
		{name: "zero components", iso: "PT0M0S", want: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.iso))
		})
	}
}
