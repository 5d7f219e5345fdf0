package localtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	v := Of(time.Date(2024, 1, 2, 12, 30, 45, 0, time.UTC))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T12:30:45"`, string(data))
}

func TestUnmarshal(t *testing.T) {
	var v LocalDateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02T12:30:45"`), &v))
	assert.Equal(t, time.Date(2024, 1, 2, 12, 30, 45, 0, time.UTC), v.Time)
}

func TestUnmarshalRejectsZoneDesignator(t *testing.T) {
	var v LocalDateTime
	require.Error(t, json.Unmarshal([]byte(`"2024-01-02T12:30:45Z"`), &v))
	require.Error(t, json.Unmarshal([]byte(`1704198645`), &v))
}
