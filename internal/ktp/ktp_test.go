package ktp

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	text      string
	err       error
	languages []string
	bounds    image.Rectangle
}

func (e *fakeEngine) RecognizeImage(_ context.Context, img image.Image, languages []string) (string, error) {
	e.languages = languages
	e.bounds = img.Bounds()
	return e.text, e.err
}
func (e *fakeEngine) Name() string { return "fake" }
func (e *fakeEngine) Close() error { return nil }

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "symbols_removed", in: "NIK : 3201-0102/03*", want: "NIK 3201-010203"},
		{name: "whitespace_collapsed", in: "  Nama\n\tBUDI   SANTOSO  ", want: "Nama BUDI SANTOSO"},
		{name: "punctuation_kept", in: "Jl. Merdeka, No. 1-A", want: "Jl. Merdeka, No. 1-A"},
		{name: "non_ascii_letters_removed", in: "Gol. Darah: Ö", want: "Gol. Darah"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestService_ProcessFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Set(10, 10, color.Black)
	path := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, imaging.Save(img, path))

	engine := &fakeEngine{text: "PROVINSI  JAWA BARAT\nNIK : 3201#"}
	result, err := NewService(engine).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "PROVINSI  JAWA BARAT\nNIK : 3201#", result.RawText)
	assert.Equal(t, "PROVINSI JAWA BARAT NIK 3201", result.CleanedText)
	assert.Equal(t, DefaultLanguages, engine.languages)
	assert.Equal(t, 30, engine.bounds.Dx())
}

func TestService_Errors(t *testing.T) {
	_, err := NewService(&fakeEngine{}).ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)

	engineErr := errors.New("engine down")
	_, err = NewService(&fakeEngine{err: engineErr}, "ind").ProcessImage(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.ErrorIs(t, err, engineErr)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("card.JPG"))
	assert.True(t, IsImageFile("card.png"))
	assert.False(t, IsImageFile("card.pdf"))
	assert.False(t, IsImageFile("card"))
}
