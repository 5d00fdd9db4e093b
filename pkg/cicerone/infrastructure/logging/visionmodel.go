package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/cicerone/pkg/cicerone/domain"
	"kgeyst.com/cicerone/pkg/common"
)

type visionModelDecorator struct {
	wrappedVisionModel domain.VisionModel
	logger             common.Logger
}

func NewVisionModelDecorator(wrappedVisionModel domain.VisionModel, logger common.Logger) domain.VisionModel {
	return &visionModelDecorator{
		wrappedVisionModel: wrappedVisionModel,
		logger:             logger,
	}
}

func (v *visionModelDecorator) Name() string {
	return v.wrappedVisionModel.Name()
}

// Describe the image itself is never logged, only its size.
func (v *visionModelDecorator) Describe(
	ctx context.Context,
	credential domain.Credential,
	image domain.EncodedImage,
	instruction string,
) (string, error) {
	v.logger.Log(fmt.Sprintf("describing image (%s, %d base64 bytes) using '%s', key %s", image.MIMEType, len(image.Base64), v.Name(), credential.Masked()))
	t := time.Now()
	description, err := v.wrappedVisionModel.Describe(ctx, credential, image, instruction)
	if err != nil {
		v.logger.Log(fmt.Sprintf("'%s' failed after %d ms: %s", v.Name(), time.Since(t).Milliseconds(), err))
		return "", err
	}
	v.logger.Log(fmt.Sprintf("\n================\n image description:\n%s\n (took %d ms)\n================\n", description, time.Since(t).Milliseconds()))
	return description, nil
}
