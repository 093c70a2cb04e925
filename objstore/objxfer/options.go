package objxfer

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/stratastore/transfer-common/envvar"
	"github.com/stratastore/transfer-common/fault"
	"github.com/stratastore/transfer-common/objstore/objcli"
	"github.com/stratastore/transfer-common/objstore/objcli/objaws"
	"github.com/stratastore/transfer-common/system"
)

const (
	// DefaultSegmentSize is the target size for the parts of a multipart transfer, and the threshold above which a
	// put switches from a single request to a multipart session.
	DefaultSegmentSize = 8 * 1024 * 1024

	// DefaultDeleteBatchSize is the number of keys dispatched per batched delete request, kept under the remote
	// limit with a little padding for paranoia sake.
	DefaultDeleteBatchSize = 995
)

// Environment variables recognized by 'Config.defaults', overriding the corresponding attributes when set.
const (
	EnvRegion     = "TRANSFER_AWS_REGION"
	EnvEndpoint   = "TRANSFER_AWS_ENDPOINT"
	EnvNumWorkers = "TRANSFER_NUM_WORKERS"
)

// Config is the recognized configuration surface of the transfer engine, generally loaded from a JSON file via
// 'LoadConfig' or populated directly by the embedding application.
type Config struct {
	// Region is the region remote requests are dispatched to. Defaults to the 'objaws' default region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the resolved remote endpoint, generally used to address S3 compatible stores; a non-empty
	// endpoint forces path style addressing.
	Endpoint string `json:"endpoint,omitempty"`

	// Threads is the size of the worker pool executing remote I/O. Defaults to the number of vCPUs.
	Threads int `json:"threads,omitempty"`

	// SegmentSize is the target part size for multipart transfers, and the single-put threshold.
	SegmentSize uint64 `json:"segment_size,omitempty"`

	// MinSegmentSize/MaxSegmentSize bound the part size, they default to the remote service's documented limits.
	MinSegmentSize uint64 `json:"min_segment_size,omitempty"`
	MaxSegmentSize uint64 `json:"max_segment_size,omitempty"`

	// MaxParts is the maximum number of parts for a single multipart transfer.
	MaxParts uint64 `json:"max_parts,omitempty"`

	// DeleteBatchSize is the maximum number of keys dispatched per batched delete request.
	DeleteBatchSize int `json:"delete_batch_size,omitempty"`
}

// defaults fills any missing attributes with sane defaults, applying any recognized environment overrides.
func (c *Config) defaults() {
	if region, ok := envvar.GetString(EnvRegion); ok {
		c.Region = region
	}

	if endpoint, ok := envvar.GetString(EnvEndpoint); ok {
		c.Endpoint = endpoint
	}

	if threads, ok := envvar.GetInt(EnvNumWorkers); ok {
		c.Threads = threads
	}

	if c.Region == "" {
		c.Region = objaws.DefaultRegion
	}

	if c.Threads == 0 {
		c.Threads = system.NumCPU()
	}

	if c.SegmentSize == 0 {
		c.SegmentSize = DefaultSegmentSize
	}

	if c.MinSegmentSize == 0 {
		c.MinSegmentSize = objaws.MinPartSize
	}

	if c.MaxSegmentSize == 0 {
		c.MaxSegmentSize = objaws.MaxPartSize
	}

	if c.MaxParts == 0 {
		c.MaxParts = objaws.MaxPartCount
	}

	if c.DeleteBatchSize == 0 || c.DeleteBatchSize > objaws.PageSize {
		c.DeleteBatchSize = DefaultDeleteBatchSize
	}
}

// LoadConfig reads engine configuration from the JSON file at the given path; unset attributes are filled with
// defaults when the engine is created.
func LoadConfig(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := jsoniter.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return config, nil
}

// Options encapsulates the options for creating a new transfer engine.
type Options struct {
	// Client is the provider client remote requests are dispatched through; when omitted, an AWS client is created
	// from the region/endpoint configuration.
	Client objcli.Client

	// Config is the engine configuration, unset attributes are filled with defaults.
	Config Config

	// FailFast restores the legacy operator-fatal behavior for part upload failures; when set a failed part panics
	// via the logging facade instead of failing the owning session. Defaults to error propagation.
	FailFast bool

	// Fault is an optional fault injector crossed at every remote call site, used by tests to simulate failure
	// without modifying engine logic.
	Fault fault.Injector
}
