package ocr

import (
	"context"
	"fmt"
	"image"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionEngine implements Engine using Google Cloud Vision document text detection.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates a Vision client with credentials from environment.
// It expects either GOOGLE_CREDENTIALS JSON or a GOOGLE_APPLICATION_CREDENTIALS path,
// and falls back to application default credentials.
func NewVisionEngine(ctx context.Context) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	client, err := vision.NewImageAnnotatorClient(ctx, credentialOptions()...)
	if err != nil {
		if len(credentialOptions()) == 0 {
			return nil, WrapOCRError(ProviderVision, op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(ProviderVision, op, err, "failed to create Vision client")
	}

	return &VisionEngine{client: client}, nil
}

// Name returns the provider name.
func (v *VisionEngine) Name() string { return ProviderVision }

// RecognizeImage implements Engine.
func (v *VisionEngine) RecognizeImage(ctx context.Context, img image.Image, languages []string) (string, error) {
	const op = "RecognizeImage"

	data, err := encodePNG(img)
	if err != nil {
		return "", WrapOCRError(ProviderVision, op, err, "failed to encode image")
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: toLanguageHints(languages),
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", WrapOCRError(ProviderVision, op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", WrapOCRError(ProviderVision, op, ErrOCRFailed, "no response from Vision API")
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return "", WrapOCRError(ProviderVision, op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", imageResp.Error.Message))
	}
	if imageResp.FullTextAnnotation == nil {
		return "", nil
	}
	return imageResp.FullTextAnnotation.Text, nil
}

// Close closes the underlying Vision client.
func (v *VisionEngine) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// credentialOptions reads inline or file credentials from the environment.
func credentialOptions() []option.ClientOption {
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credJSON))}
	}
	if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(credFile)}
	}
	return nil
}
