package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() Layout {
	l := DefaultLayout()
	l.Created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return l
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCanvas_NewCanvasPrintsHeaderOnce(t *testing.T) {
	c := NewCanvas(testLayout(), "INVOICE", nil)
	assert.Equal(t, 1, c.Pages())
	assert.Equal(t, 1, c.headers)
	assert.Greater(t, c.Y(), c.Layout().LetterheadHeight)
}

func TestCanvas_EnsureSpace(t *testing.T) {
	c := NewCanvas(testLayout(), "INVOICE", nil)
	assert.False(t, c.EnsureSpace(10))

	c.Gap(c.Layout().BreakAt - c.Y() - 5)
	assert.True(t, c.EnsureSpace(10))
	assert.Equal(t, 2, c.Pages())
	assert.Equal(t, 2, c.headers)
}

func TestCanvas_DetailsBreaksAndReprintsHeader(t *testing.T) {
	c := NewCanvas(testLayout(), "HALL TICKET", nil)
	afterHeader := c.Y()

	rows := make([]Row, 60)
	for i := range rows {
		rows[i] = Row{Key: fmt.Sprintf("Field %d", i), Value: "value"}
	}
	c.Details(rows)

	require.GreaterOrEqual(t, c.Pages(), 2)
	assert.Equal(t, c.Pages(), c.headers)
	assert.LessOrEqual(t, c.Y(), c.Layout().BreakAt)
	assert.Greater(t, c.Y(), afterHeader)

	b, err := c.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestCanvas_TableWrapsAndRepeatsHeaderOnBreak(t *testing.T) {
	c := NewCanvas(testLayout(), "INVOICE", nil)
	cols := []Column{{Title: "Item", Width: 60}, {Title: "Amount", Width: 40, Align: "R"}}
	c.TableHeader(cols)

	before := c.Y()
	c.Table(cols, []string{"A very long description that certainly needs more than one line in sixty millimetres", "Rs. 10.00"})
	assert.Greater(t, c.Y()-before, c.Layout().RowHeight)

	for i := 0; i < 40; i++ {
		c.Table(cols, []string{"row", "1"})
	}
	assert.GreaterOrEqual(t, c.Pages(), 2)
}

func TestCanvas_Image(t *testing.T) {
	c := NewCanvas(testLayout(), "X", nil)
	require.NoError(t, c.Image("dot", testPNG(t), 10, 50, 10, 10))
	// second draw reuses the registration
	require.NoError(t, c.Image("dot", testPNG(t), 30, 50, 10, 10))

	err := c.Image("junk", []byte("not an image"), 10, 10, 5, 5)
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestCanvas_LetterheadWithLogo(t *testing.T) {
	c := NewCanvas(testLayout(), "INVOICE", testPNG(t))
	_, err := c.Bytes()
	require.NoError(t, err)
}
