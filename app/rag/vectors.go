package rag

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantStore keeps one collection per area so that tenant isolation is
// structural: a search can only ever touch the collection it names.
type QdrantStore struct {
	client     *qdrant.Client
	prefix     string
	vectorSize int

	mu    sync.Mutex
	known map[string]bool
}

func NewQdrantStore(host string, port int, prefix string, vectorSize int) (vectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, err
	}
	return &QdrantStore{
		client:     client,
		prefix:     prefix,
		vectorSize: vectorSize,
		known:      map[string]bool{},
	}, nil
}

func (s *QdrantStore) collection(area string) string {
	return s.prefix + "_" + area
}

func (s *QdrantStore) EnsureArea(ctx context.Context, area string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known[area] {
		return nil
	}

	name := s.collection(area)
	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: check collection %s: %v", ErrRetrievalUnavailable, name, err)
	}
	if !exists {
		if err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: &qdrant.VectorsConfig{
				Config: &qdrant.VectorsConfig_Params{
					Params: &qdrant.VectorParams{
						Size:     uint64(s.vectorSize),
						Distance: qdrant.Distance_Cosine,
					},
				},
			},
		}); err != nil {
			return fmt.Errorf("%w: create collection %s: %v", ErrRetrievalUnavailable, name, err)
		}
	}
	s.known[area] = true
	return nil
}

func (s *QdrantStore) Close() error {
	return s.client.Close()
}

func (s *QdrantStore) Upsert(ctx context.Context, area string, chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("upsert: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if err := s.EnsureArea(ctx, area); err != nil {
		return err
	}

	pts := make([]*qdrant.PointStruct, len(chunks))
	for i, ch := range chunks {
		pts[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(ChunkPointID(ch.DocumentID, ch.Seq)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":        ch.Text,
				"document_id": ch.DocumentID,
				"seq":         ch.Seq,
				"area":        area,
			}),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection(area),
		Points:         pts,
	})
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrRetrievalUnavailable, s.collection(area), err)
	}
	return nil
}

func (s *QdrantStore) Search(ctx context.Context, area string, vector []float32, k int) ([]ScoredChunk, error) {
	if err := s.EnsureArea(ctx, area); err != nil {
		return nil, err
	}

	limit := uint64(k)
	resp, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection(area),
		Limit:          &limit,
		Query:          qdrant.NewQuery(vector...),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrRetrievalUnavailable, s.collection(area), err)
	}

	out := make([]ScoredChunk, 0, len(resp))
	for _, r := range resp {
		out = append(out, ScoredChunk{
			Chunk: Chunk{
				DocumentID: r.Payload["document_id"].GetStringValue(),
				Seq:        int(r.Payload["seq"].GetIntegerValue()),
				Text:       r.Payload["text"].GetStringValue(),
				Area:       r.Payload["area"].GetStringValue(),
			},
			Score: r.Score,
		})
	}
	sortScored(out)
	return out, nil
}

func (s *QdrantStore) DeleteDocument(ctx context.Context, area, documentID string) error {
	if err := s.EnsureArea(ctx, area); err != nil {
		return err
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collection(area),
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s from %s: %v", ErrRetrievalUnavailable, documentID, s.collection(area), err)
	}
	return nil
}

// sortScored orders by descending score, ties broken by lower sequence
// index so identical corpora always rank identically.
func sortScored(results []ScoredChunk) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Seq < results[j].Chunk.Seq
	})
}
