// Package objaws provides an AWS S3 implementation of the 'objcli.Client' interface.
package objaws

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/stratastore/transfer-common/hofp"
	"github.com/stratastore/transfer-common/maths"
	"github.com/stratastore/transfer-common/objstore/objcli"
	"github.com/stratastore/transfer-common/objstore/objval"
	"github.com/stratastore/transfer-common/system"
)

// Client implements the 'objcli.Client' interface allowing the creation/management of objects stored in AWS S3.
type Client struct {
	serviceAPI serviceAPI
}

var _ objcli.Client = (*Client)(nil)

// ClientOptions encapsulates the options for creating a new AWS Client.
type ClientOptions struct {
	// ServiceAPI is the is the minimal subset of functions that we use from the AWS SDK, this allows for a greatly
	// reduced surface area for mock generation. When omitted, a service is created from the region/endpoint options.
	ServiceAPI serviceAPI

	// Region is the AWS region requests will be dispatched to. Defaults to 'DefaultRegion'.
	Region string

	// Endpoint overrides the resolved S3 endpoint, generally used to address S3 compatible stores. A non-empty
	// endpoint forces path style addressing since virtual hosted addressing requires provider DNS support.
	Endpoint string
}

// NewClient returns a new client, creating the backing AWS service using the given options when one isn't supplied.
func NewClient(options ClientOptions) (*Client, error) {
	if options.ServiceAPI != nil {
		return &Client{serviceAPI: options.ServiceAPI}, nil
	}

	serviceAPI, err := NewServiceAPI(options.Region, options.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return &Client{serviceAPI: serviceAPI}, nil
}

// NewServiceAPI creates an AWS S3 service for the given region/endpoint, in general the result is the one created
// using the 's3.New' function exposed by the SDK.
func NewServiceAPI(region, endpoint string) (*s3.S3, error) {
	if region == "" {
		region = DefaultRegion
	}

	config := aws.NewConfig().WithRegion(region)

	if endpoint != "" {
		config = config.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *config,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s3.New(sess), nil
}

func (c *Client) Provider() objval.Provider {
	return objval.ProviderAWS
}

func (c *Client) GetObject(ctx context.Context, bucket, key string, br *objval.ByteRange) (*objval.Object, error) {
	if err := br.Valid(false); err != nil {
		return nil, err // Purposefully not wrapped
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if br != nil {
		input.Range = aws.String(br.ToRangeHeader())
	}

	resp, err := c.serviceAPI.GetObjectWithContext(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	attrs := objval.ObjectAttrs{
		Key:          key,
		Size:         *resp.ContentLength,
		LastModified: resp.LastModified,
	}

	object := &objval.Object{
		ObjectAttrs: attrs,
		Body:        resp.Body,
	}

	return object, nil
}

func (c *Client) GetObjectAttrs(ctx context.Context, bucket, key string) (*objval.ObjectAttrs, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	resp, err := c.serviceAPI.HeadObjectWithContext(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	attrs := &objval.ObjectAttrs{
		Key:          key,
		ETag:         *resp.ETag,
		Size:         *resp.ContentLength,
		LastModified: resp.LastModified,
	}

	return attrs, nil
}

func (c *Client) PutObject(ctx context.Context, bucket, key string, body io.ReadSeeker) error {
	input := &s3.PutObjectInput{
		Body:   body,
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	_, err := c.serviceAPI.PutObjectWithContext(ctx, input)

	return handleError(input.Bucket, input.Key, err)
}

func (c *Client) DeleteObjects(ctx context.Context, bucket string, keys ...string) error {
	pool := hofp.NewPool(hofp.Options{
		Context:   ctx,
		Size:      system.NumWorkers(len(keys)),
		LogPrefix: "(objaws)",
	})

	del := func(ctx context.Context, start, end int) error {
		return c.deleteObjects(ctx, bucket, keys[start:maths.Min(end, len(keys))]...)
	}

	queue := func(start, end int) error {
		return pool.Queue(func(ctx context.Context) error { return del(ctx, start, end) })
	}

	for start, end := 0, PageSize; start < len(keys); start, end = start+PageSize, end+PageSize {
		if queue(start, end) != nil {
			break
		}
	}

	return pool.Stop()
}

// deleteObjects performs a batched delete operation for a single page (<=1000) of keys.
func (c *Client) deleteObjects(ctx context.Context, bucket string, keys ...string) error {
	input := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &s3.Delete{Quiet: aws.Bool(true)},
	}

	for _, key := range keys {
		input.Delete.Objects = append(input.Delete.Objects, &s3.ObjectIdentifier{Key: aws.String(key)})
	}

	resp, err := c.serviceAPI.DeleteObjectsWithContext(ctx, input)
	if err != nil {
		return handleError(input.Bucket, nil, err)
	}

	for _, err := range resp.Errors {
		if awsErr := awserr.New(*err.Code, *err.Message, nil); !isKeyNotFound(awsErr) {
			return handleError(input.Bucket, err.Key, awsErr)
		}
	}

	return nil
}

func (c *Client) IterateObjects(ctx context.Context, bucket, prefix string, fn objcli.IterateFunc) error {
	var err error

	callback := func(page *s3.ListObjectsV2Output, _ bool) bool {
		err = handlePage(page, fn)
		return err == nil
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	// It's important we use an assignment expression here to avoid overwriting the error assigned by our callback
	if err := c.serviceAPI.ListObjectsV2PagesWithContext(ctx, input, callback); err != nil {
		return handleError(input.Bucket, nil, err)
	}

	return err
}

// handlePage iterates over the objects in the given page executing the given function for each of them.
func handlePage(page *s3.ListObjectsV2Output, fn objcli.IterateFunc) error {
	for _, o := range page.Contents {
		attrs := &objval.ObjectAttrs{Key: *o.Key, Size: *o.Size, LastModified: o.LastModified}

		// If the caller has returned an error, stop iteration, and return control to them
		if err := fn(attrs); err != nil {
			return err // Purposefully not wrapped
		}
	}

	return nil
}

func (c *Client) CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	resp, err := c.serviceAPI.CreateMultipartUploadWithContext(ctx, input)
	if err != nil {
		return "", handleError(input.Bucket, input.Key, err)
	}

	return *resp.UploadId, nil
}

func (c *Client) UploadPart(
	ctx context.Context, bucket, id, key string, number int, body io.ReadSeeker,
) (objval.Part, error) {
	size, err := aws.SeekerLen(body)
	if err != nil {
		return objval.Part{}, fmt.Errorf("failed to determine body length: %w", err)
	}

	input := &s3.UploadPartInput{
		Body:          body,
		Bucket:        aws.String(bucket),
		ContentLength: aws.Int64(size),
		Key:           aws.String(key),
		PartNumber:    aws.Int64(int64(number)),
		UploadId:      aws.String(id),
	}

	output, err := c.serviceAPI.UploadPartWithContext(ctx, input)
	if err != nil {
		return objval.Part{}, handleError(input.Bucket, input.Key, err)
	}

	return objval.Part{ID: *output.ETag, Number: number, Size: size}, nil
}

func (c *Client) CompleteMultipartUpload(ctx context.Context, bucket, id, key string, parts ...objval.Part) error {
	converted := make([]*s3.CompletedPart, len(parts))

	for index, part := range parts {
		converted[index] = &s3.CompletedPart{ETag: aws.String(part.ID), PartNumber: aws.Int64(int64(part.Number))}
	}

	input := &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(id),
		MultipartUpload: &s3.CompletedMultipartUpload{Parts: converted},
	}

	_, err := c.serviceAPI.CompleteMultipartUploadWithContext(ctx, input)

	return handleError(input.Bucket, input.Key, err)
}

func (c *Client) AbortMultipartUpload(ctx context.Context, bucket, id, key string) error {
	input := &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(id),
	}

	_, err := c.serviceAPI.AbortMultipartUploadWithContext(ctx, input)
	if err != nil && !isNoSuchUpload(err) {
		return handleError(input.Bucket, input.Key, err)
	}

	return nil
}
