package objaws

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/mock"
)

// mockServiceAPI is a hand-written mock implementation of the 'serviceAPI' interface.
type mockServiceAPI struct {
	mock.Mock
}

var _ serviceAPI = (*mockServiceAPI)(nil)

func (m *mockServiceAPI) AbortMultipartUploadWithContext(
	ctx context.Context, input *s3.AbortMultipartUploadInput, _ ...request.Option,
) (*s3.AbortMultipartUploadOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.AbortMultipartUploadOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) CompleteMultipartUploadWithContext(
	ctx context.Context, input *s3.CompleteMultipartUploadInput, _ ...request.Option,
) (*s3.CompleteMultipartUploadOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.CompleteMultipartUploadOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) CreateMultipartUploadWithContext(
	ctx context.Context, input *s3.CreateMultipartUploadInput, _ ...request.Option,
) (*s3.CreateMultipartUploadOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.CreateMultipartUploadOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) DeleteObjectsWithContext(
	ctx context.Context, input *s3.DeleteObjectsInput, _ ...request.Option,
) (*s3.DeleteObjectsOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.DeleteObjectsOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) GetObjectWithContext(
	ctx context.Context, input *s3.GetObjectInput, _ ...request.Option,
) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.GetObjectOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) HeadObjectWithContext(
	ctx context.Context, input *s3.HeadObjectInput, _ ...request.Option,
) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.HeadObjectOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) ListObjectsV2PagesWithContext(
	ctx context.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool,
	_ ...request.Option,
) error {
	args := m.Called(ctx, input, fn)

	return args.Error(0)
}

func (m *mockServiceAPI) PutObjectWithContext(
	ctx context.Context, input *s3.PutObjectInput, _ ...request.Option,
) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.PutObjectOutput)

	return output, args.Error(1)
}

func (m *mockServiceAPI) UploadPartWithContext(
	ctx context.Context, input *s3.UploadPartInput, _ ...request.Option,
) (*s3.UploadPartOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*s3.UploadPartOutput)

	return output, args.Error(1)
}
