package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/hairlyf/backend/internal/models"
)

// Indexer mirrors catalog mutations into an elasticsearch index. A nil
// Indexer (ES disabled) turns every call into a no-op.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	if es == nil {
		return nil
	}
	return &Indexer{ES: es, Index: index}
}

type productDoc struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func (ix *Indexer) IndexProduct(ctx context.Context, p *models.Product) error {
	if ix == nil {
		return nil
	}

	doc := productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := ix.ES.Index(
		ix.Index,
		&buf,
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index error: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) DeleteProduct(ctx context.Context, id uint) error {
	if ix == nil {
		return nil
	}

	res, err := ix.ES.Delete(
		ix.Index,
		strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete error: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi-match over name and description, name boosted.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es search error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
