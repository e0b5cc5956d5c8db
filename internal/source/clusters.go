package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/theirongolddev/chatwrap/internal/model"
)

type clusterBody struct {
	Cluster string `json:"cluster"`
	Nums    int    `json:"nums"`
}

// DecodeClusters decodes a cluster_summaries.json object into an ordered
// slice. Keys that are canonical non-negative integers come first in
// ascending numeric order, then every other key in document order. This is
// the order a browser enumerates the same object in, which downstream
// tie-breaking depends on.
func DecodeClusters(data []byte) (model.ClusterSummaries, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading clusters: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("reading clusters: expected object, got %v", tok)
	}

	var (
		clusters []model.Cluster
		seen     = make(map[string]int)
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading cluster key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("reading cluster key: unexpected %v", tok)
		}

		var body clusterBody
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("decoding cluster %q: %w", key, err)
		}

		c := model.Cluster{ID: key, Name: body.Cluster, Nums: body.Nums}
		if i, dup := seen[key]; dup {
			clusters[i] = c
			continue
		}
		seen[key] = len(clusters)
		clusters = append(clusters, c)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading clusters: %w", err)
	}

	var indexed, named []model.Cluster
	for _, c := range clusters {
		if _, ok := arrayIndex(c.ID); ok {
			indexed = append(indexed, c)
		} else {
			named = append(named, c)
		}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, _ := arrayIndex(indexed[i].ID)
		b, _ := arrayIndex(indexed[j].ID)
		return a < b
	})
	return append(indexed, named...), nil
}

// arrayIndex reports whether key is a canonical integer in [0, 2^32-2].
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}
