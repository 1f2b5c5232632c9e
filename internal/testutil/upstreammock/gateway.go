package upstreammock

import (
	"context"
	"io"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/domain/selection"
	"skillport/internal/upstream"
)

// Gateway is a function-backed mock that satisfies upstream.Gateway.
// Only methods you need are included; add more as tests require.
type Gateway struct {
	FetchMasterFn          func(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
	FetchEmployeeFn        func(ctx context.Context, email string, kind catalog.Kind) (selection.Preselection, error)
	SaveEmployeeFn         func(ctx context.Context, req upstream.SaveRequest) error
	FetchPendingRequestsFn func(ctx context.Context, reviewerEmail string, kind catalog.Kind) ([]review.Group, error)
	ReviewFn               func(ctx context.Context, req upstream.ReviewRequest) error
	MasterFileFn           func(ctx context.Context, kind catalog.Kind) (io.ReadCloser, string, error)
	UploadCVFn             func(ctx context.Context, email, filename string, body io.Reader) error
}

var _ upstream.Gateway = (*Gateway)(nil)

func (m *Gateway) FetchMaster(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	if m.FetchMasterFn != nil {
		return m.FetchMasterFn(ctx, kind)
	}
	return nil, nil
}

func (m *Gateway) FetchEmployee(ctx context.Context, email string, kind catalog.Kind) (selection.Preselection, error) {
	if m.FetchEmployeeFn != nil {
		return m.FetchEmployeeFn(ctx, email, kind)
	}
	return selection.Preselection{}, nil
}

func (m *Gateway) SaveEmployee(ctx context.Context, req upstream.SaveRequest) error {
	if m.SaveEmployeeFn != nil {
		return m.SaveEmployeeFn(ctx, req)
	}
	return nil
}

func (m *Gateway) FetchPendingRequests(ctx context.Context, reviewerEmail string, kind catalog.Kind) ([]review.Group, error) {
	if m.FetchPendingRequestsFn != nil {
		return m.FetchPendingRequestsFn(ctx, reviewerEmail, kind)
	}
	return nil, nil
}

func (m *Gateway) Review(ctx context.Context, req upstream.ReviewRequest) error {
	if m.ReviewFn != nil {
		return m.ReviewFn(ctx, req)
	}
	return nil
}

func (m *Gateway) MasterFile(ctx context.Context, kind catalog.Kind) (io.ReadCloser, string, error) {
	if m.MasterFileFn != nil {
		return m.MasterFileFn(ctx, kind)
	}
	return io.NopCloser(nil), "", nil
}

func (m *Gateway) UploadCV(ctx context.Context, email, filename string, body io.Reader) error {
	if m.UploadCVFn != nil {
		return m.UploadCVFn(ctx, email, filename, body)
	}
	return nil
}
