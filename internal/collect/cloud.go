// cloud.go detects whether the host is a cloud instance by probing the
// well-known instance metadata address once. An unreachable metadata
// service is the normal outcome on physical or on-prem hosts and is
// reported as a finding, never as a tool error.
package collect

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultMetadataEndpoint is the AWS-style instance identity path on
// the link-local metadata address shared by the major providers.
const DefaultMetadataEndpoint = "http://169.254.169.254/latest/meta-data/instance-id"

// maxMetadataBody bounds how much of a metadata response is read for
// classification.
const maxMetadataBody = 4096

// CloudDetect probes the instance metadata service.
type CloudDetect struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewCloudDetect creates the cloud detection collector. The endpoint is
// configurable so tests can point it at a local server; timeout bounds
// the whole probe.
func NewCloudDetect(endpoint string, timeout time.Duration, logger *slog.Logger) *CloudDetect {
	// A single probe attempt per run: repeated probing of a link-local
	// address adds no signal, so retries are disabled outright.
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &CloudDetect{
		endpoint: endpoint,
		client:   rc.StandardClient(),
		logger:   logger,
	}
}

// Name implements Collector.
func (c *CloudDetect) Name() string { return "Cloud Detection" }

// Collect issues one GET against the metadata endpoint and classifies
// the response. Connection failure or timeout means the host is not a
// cloud instance; a reachable but unrecognizable response is reported
// as undetermined.
func (c *CloudDetect) Collect(ctx context.Context) Section {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		c.logger.Error("invalid metadata endpoint",
			slog.String("endpoint", c.endpoint),
			slog.String("error", err.Error()))
		return Section{Title: c.Name(), Body: "Cloud detection could not run (invalid metadata endpoint)."}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("metadata service unreachable",
			slog.String("error", err.Error()))
		return Section{Title: c.Name(), Body: "Not a cloud instance (metadata service unreachable)."}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBody))
	if err != nil {
		return Section{Title: c.Name(), Body: "Not a cloud instance (metadata response unreadable)."}
	}

	provider := classifyMetadataResponse(resp.StatusCode, resp.Header, string(body))
	if provider == "" {
		return Section{Title: c.Name(), Body: "Metadata address responded but the provider could not be determined."}
	}

	c.logger.Info("cloud provider detected", slog.String("provider", provider))
	return Section{Title: c.Name(), Body: "Cloud provider detected: " + provider + "."}
}

// classifyMetadataResponse maps a metadata response to a provider name,
// or "" when the response matches no known shape.
//
// AWS returns the instance ID (i-...) for the probed path. GCP's
// metadata server stamps every response with Metadata-Flavor: Google.
// Azure rejects requests lacking its Metadata: true header with a 400
// that names the missing header.
func classifyMetadataResponse(status int, header http.Header, body string) string {
	if header.Get("Metadata-Flavor") == "Google" {
		return "GCP"
	}
	if status == http.StatusOK && strings.HasPrefix(strings.TrimSpace(body), "i-") {
		return "AWS"
	}
	if status == http.StatusBadRequest && strings.Contains(strings.ToLower(body), "metadata") {
		return "Azure"
	}
	return ""
}
