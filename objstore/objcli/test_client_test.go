package objcli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratastore/transfer-common/objstore/objval"
)

func TestTestClientPutGetObject(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	require.NoError(t, client.PutObject(context.Background(), "bucket", "key", strings.NewReader("value")))

	object, err := client.GetObject(context.Background(), "bucket", "key", nil)
	require.NoError(t, err)

	defer object.Body.Close()

	require.Equal(t, "key", object.Key)
	require.Equal(t, int64(5), object.Size)
	require.NotEmpty(t, object.ETag)

	data := make([]byte, 5)
	_, err = object.Body.Read(data)
	require.NoError(t, err)
	require.Equal(t, []byte("value"), data)
}

func TestTestClientGetObjectWithByteRange(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	require.NoError(t, client.PutObject(context.Background(), "bucket", "key", strings.NewReader("0123456789")))

	object, err := client.GetObject(context.Background(), "bucket", "key", &objval.ByteRange{Start: 2, End: 5})
	require.NoError(t, err)

	defer object.Body.Close()

	data := make([]byte, 4)
	_, err = object.Body.Read(data)
	require.NoError(t, err)
	require.Equal(t, []byte("2345"), data)
}

func TestTestClientGetObjectNotFound(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	_, err := client.GetObject(context.Background(), "bucket", "key", nil)
	require.Error(t, err)
	TestRequireKeyNotFound(t, client, "key")
}

func TestTestClientDeleteObjects(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	for _, key := range []string{"key1", "key2", "key3"} {
		TestUploadRAW(t, client, key, []byte("value"))
	}

	require.NoError(t, client.DeleteObjects(context.Background(), "bucket", "key1", "key3", "not-a-key"))

	TestRequireKeyNotFound(t, client, "key1")
	TestRequireKeyExists(t, client, "key2")
	TestRequireKeyNotFound(t, client, "key3")
}

func TestTestClientIterateObjects(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	for _, key := range []string{"prefix/key1", "prefix/key2", "other/key3"} {
		TestUploadRAW(t, client, key, []byte("value"))
	}

	all := TestListObjects(t, client, "prefix/")
	require.Len(t, all, 2)
}

func TestTestClientMultipartUpload(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	id, err := client.CreateMultipartUpload(context.Background(), "bucket", "key")
	require.NoError(t, err)

	parts := make([]objval.Part, 0, 2)

	for number, body := range map[int]string{1: "first", 2: "second"} {
		part, err := client.UploadPart(context.Background(), "bucket", id, "key", number,
			strings.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, number, part.Number)

		parts = append(parts, part)
	}

	if parts[0].Number != 1 {
		parts[0], parts[1] = parts[1], parts[0]
	}

	require.NoError(t, client.CompleteMultipartUpload(context.Background(), "bucket", id, "key", parts...))

	require.Equal(t, []byte("firstsecond"), TestDownloadRAW(t, client, "key"))

	// Completion must have cleaned up the in-progress parts
	require.Len(t, client.Buckets["bucket"], 1)
}

func TestTestClientAbortMultipartUpload(t *testing.T) {
	client := NewTestClient(t, objval.ProviderAWS)

	id, err := client.CreateMultipartUpload(context.Background(), "bucket", "key")
	require.NoError(t, err)

	_, err = client.UploadPart(context.Background(), "bucket", id, "key", 1, bytes.NewReader([]byte("value")))
	require.NoError(t, err)

	require.NoError(t, client.AbortMultipartUpload(context.Background(), "bucket", id, "key"))

	TestRequireKeyNotFound(t, client, "key")
	require.Empty(t, client.Buckets["bucket"])
}
