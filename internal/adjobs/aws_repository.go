package adjobs

import (
	"context"
)

type AWSRepository interface {
	UploadFile(ctx context.Context, bucket, key, filePath string) error
	RemoveObject(ctx context.Context, bucket, key string) error
}
