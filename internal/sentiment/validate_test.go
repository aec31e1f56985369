package sentiment

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	text, err := ValidateText("  สวัสดีครับ  ", 10)
	require.NoError(t, err)
	assert.Equal(t, "สวัสดีครับ", text)

	_, err = ValidateText(" \n\t", 10)
	assert.ErrorIs(t, err, ErrEmptyText)

	// limit counts runes, not bytes
	_, err = ValidateText(strings.Repeat("ก", 11), 10)
	assert.ErrorIs(t, err, ErrTextTooLong)

	_, err = ValidateText(strings.Repeat("ก", 5000), 0)
	assert.NoError(t, err)
}

func TestSplitLines(t *testing.T) {
	lines, err := SplitLines("ดีมาก\r\n\n  แย่มาก  \n\nเฉยๆ\n", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"ดีมาก", "แย่มาก", "เฉยๆ"}, lines)

	_, err = SplitLines("\n \n", 5)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = SplitLines("a\nb\nc", 2)
	assert.ErrorIs(t, err, ErrTooManyLines)
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(ErrEmptyText))
	_, err := SplitLines("a\nb", 1)
	assert.True(t, IsInputError(err))
	assert.False(t, IsInputError(errors.New("backend down")))
	assert.False(t, IsInputError(nil))
}
