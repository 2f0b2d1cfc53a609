package localstore

import (
	"context"
	"encoding/json"

	"github.com/example/leave-portal/internal/persistence"
)

// RequestRepository implements persistence.RequestRepository over the
// leaveRequests collection.
type RequestRepository struct {
	store *Store
}

// NewRequestRepository constructs a request repository bound to the store.
func NewRequestRepository(store *Store) *RequestRepository {
	return &RequestRepository{store: store}
}

func (r *RequestRepository) decode(ctx context.Context, body []byte) []persistence.Request {
	if len(body) == 0 {
		return nil
	}
	var requests []persistence.Request
	if err := json.Unmarshal(body, &requests); err != nil {
		r.store.logger.WarnContext(ctx, "collection body unparseable, reading as empty",
			"collection", collectionRequests, "error", err)
		return nil
	}
	return requests
}

// ListRequests returns every stored request in insertion order.
func (r *RequestRepository) ListRequests(ctx context.Context) ([]persistence.Request, error) {
	var requests []persistence.Request
	if err := r.store.load(ctx, collectionRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest returns the request with the given ID.
func (r *RequestRepository) GetRequest(ctx context.Context, requestID string) (persistence.Request, error) {
	requests, err := r.ListRequests(ctx)
	if err != nil {
		return persistence.Request{}, err
	}
	for _, request := range requests {
		if request.RequestID == requestID {
			return request, nil
		}
	}
	return persistence.Request{}, persistence.ErrNotFound
}

// AddRequest appends a request and saves the collection.
func (r *RequestRepository) AddRequest(ctx context.Context, request persistence.Request) error {
	return r.store.update(ctx, collectionRequests, func(body []byte) (any, error) {
		requests := r.decode(ctx, body)
		for _, existing := range requests {
			if existing.RequestID == request.RequestID {
				return nil, persistence.ErrDuplicate
			}
		}
		return append(requests, request), nil
	})
}

// UpdateRequest merges the patch into the matching record and saves the
// collection. Returns the patched record, or ErrNotFound when the ID is
// unknown; no partial mutation is persisted on failure.
func (r *RequestRepository) UpdateRequest(ctx context.Context, requestID string, update persistence.RequestUpdate) (persistence.Request, error) {
	var patched persistence.Request
	err := r.store.update(ctx, collectionRequests, func(body []byte) (any, error) {
		requests := r.decode(ctx, body)
		for i := range requests {
			if requests[i].RequestID == requestID {
				update.Apply(&requests[i])
				patched = requests[i]
				return requests, nil
			}
		}
		return nil, persistence.ErrNotFound
	})
	if err != nil {
		return persistence.Request{}, err
	}
	return patched, nil
}

// SaveRequests replaces the whole collection.
func (r *RequestRepository) SaveRequests(ctx context.Context, requests []persistence.Request) error {
	if requests == nil {
		requests = []persistence.Request{}
	}
	return r.store.save(ctx, collectionRequests, requests)
}
