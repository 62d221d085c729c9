// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const defaultQuerySize = 100

type Repository interface {
	RecordScan(ctx context.Context, record ScanRecord) error
	QueryScans(ctx context.Context, query ScanQuery) ([]ScanRecord, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository writing to index at esURL.
// transport may be nil.
func NewElasticsearchRepository(esURL, index string, transport http.RoundTripper) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
		Transport: transport,
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// RecordScan indexes a scan keyed by its scan ID
func (r *ElasticsearchRepository) RecordScan(ctx context.Context, record ScanRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: record.ScanID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing scan %s: %s", record.ScanID, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source ScanRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildScanQuery(q ScanQuery) map[string]interface{} {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": q.From.Format(time.RFC3339),
					"lte": q.To.Format(time.RFC3339),
				},
			},
		},
	}
	if q.Framework != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"framework": q.Framework},
		})
	}

	size := q.Size
	if size <= 0 {
		size = defaultQuerySize
	}
	return map[string]interface{}{
		"size": size,
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
}

// QueryScans returns scans in [From, To], newest first
func (r *ElasticsearchRepository) QueryScans(ctx context.Context, query ScanQuery) ([]ScanRecord, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildScanQuery(query)); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching scans: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, err
	}

	scans := make([]ScanRecord, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		scans = append(scans, hit.Source)
	}
	return scans, nil
}
