package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Region
	}{
		{"US", US},
		{"", US},
		{"EU", EU},
		{"ALL", ALL},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParse_UnrecognizedIsError(t *testing.T) {
	_, err := Parse("MARS")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, US, Default)
}

func TestString(t *testing.T) {
	assert.Equal(t, "EU", EU.String())
}
