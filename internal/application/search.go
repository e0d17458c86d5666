package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/mewzone/mewzone/internal/domain/entity"
)

// ProductIndexer mirrors approved products into Elasticsearch. Every method
// is a no-op when ES is not configured, so the rest of the service works
// without it.
type ProductIndexer struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func (x *ProductIndexer) enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

func (x *ProductIndexer) IndexProduct(ctx context.Context, p *entity.Product) error {
	if !x.enabled() {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"breed":       p.BreedName,
		"gender":      string(p.Gender),
		"color":       p.Color,
		"price":       p.EffectivePrice().StringFixed(2),
		"description": p.Description,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: x.Index, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		if x.Logger != nil {
			x.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && x.Logger != nil {
		x.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (x *ProductIndexer) RemoveProduct(ctx context.Context, productID string) error {
	if !x.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: productID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		if x.Logger != nil {
			x.Logger.WithError(err).WithField("product_id", productID).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// Search performs a multi_match over name, breed and description.
func (x *ProductIndexer) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !x.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "breed", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		src := h.Source
		if src == nil {
			src = map[string]any{}
		}
		src["id"] = h.ID
		out = append(out, src)
	}
	return out, nil
}
