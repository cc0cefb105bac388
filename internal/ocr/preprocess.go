package ocr

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// blurSigma is the Gaussian sigma OpenCV derives for a 5x5 kernel.
const blurSigma = 1.1

// PreprocessDocument prepares a rasterized PDF page: grayscale, Gaussian blur,
// then a binary threshold chosen with Otsu's method.
func PreprocessDocument(img image.Image) *image.Gray {
	gray := toGray(imaging.Grayscale(img))
	blurred := toGray(imaging.Blur(gray, blurSigma))
	return Binarize(blurred)
}

// PreprocessIDCard prepares an ID-card photo. It adds an unsharp step
// (1.5*gray - 0.5*blurred) between the blur and the threshold.
func PreprocessIDCard(img image.Image) *image.Gray {
	gray := toGray(imaging.Grayscale(img))
	blurred := toGray(imaging.Blur(gray, blurSigma))

	sharpened := image.NewGray(gray.Rect)
	for i := range gray.Pix {
		v := 1.5*float64(gray.Pix[i]) - 0.5*float64(blurred.Pix[i])
		sharpened.Pix[i] = clampByte(v)
	}
	return Binarize(sharpened)
}

// Binarize maps every pixel above the Otsu threshold to white and the rest to black.
func Binarize(gray *image.Gray) *image.Gray {
	threshold := OtsuThreshold(gray)
	out := image.NewGray(gray.Rect)
	for y := 0; y < gray.Rect.Dy(); y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+gray.Rect.Dx()]
		dst := out.Pix[y*out.Stride : y*out.Stride+out.Rect.Dx()]
		for x, v := range src {
			if v > threshold {
				dst[x] = 255
			}
		}
	}
	return out
}

// OtsuThreshold returns the gray level that maximizes the between-class
// variance of the image histogram.
func OtsuThreshold(gray *image.Gray) uint8 {
	var hist [256]float64
	total := 0.0
	for y := 0; y < gray.Rect.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+gray.Rect.Dx()]
		for _, v := range row {
			hist[v]++
			total++
		}
	}
	if total == 0 {
		return 0
	}

	sumAll := 0.0
	for i, n := range hist {
		sumAll += float64(i) * n
	}

	var (
		weightBg, sumBg float64
		bestVar         = -1.0
		best            uint8
	)
	for t := 0; t < 256; t++ {
		weightBg += hist[t]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t) * hist[t]
		meanBg := sumBg / weightBg
		meanFg := (sumAll - sumBg) / weightFg
		between := weightBg * weightFg * (meanBg - meanFg) * (meanBg - meanFg)
		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}
	return best
}

// toGray copies a grayscale NRGBA (R=G=B) into a single-channel image.
func toGray(img *image.NRGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[y*img.Stride:]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
