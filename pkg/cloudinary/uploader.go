package cloudinary

import (
	"bytes"
	"context"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (string, error) {
	reader := bytes.NewReader(b)

	res, err := u.cld.Upload.Upload(
		ctx,
		reader,
		uploader.UploadParams{
			Folder:   folder,
			PublicID: filename,
			// "auto" lets the same uploader carry PDF receipts and images
			ResourceType: "auto",
		},
	)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
