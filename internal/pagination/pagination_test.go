package pagination

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 1},
		{raw: "1", want: 1},
		{raw: "7", want: 7},
		{raw: "0", wantErr: true},
		{raw: "-2", wantErr: true},
		{raw: "two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			pr, err := ParseRequest(tt.raw, 10)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pr.Number)
			assert.Equal(t, (tt.want-1)*10, pr.Offset())
			assert.Equal(t, 10, pr.Limit())
		})
	}
}

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, Request{Number: 1, Size: 10}.Validate(0))
	assert.NoError(t, Request{Number: 2, Size: 10}.Validate(11))
	assert.ErrorIs(t, Request{Number: 2, Size: 10}.Validate(10), ErrInvalidPage)
	assert.ErrorIs(t, Request{Number: 3, Size: 10}.Validate(11), ErrInvalidPage)
}

func TestNew(t *testing.T) {
	t.Run("Middle page links both neighbours", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products?search=tea&page=2", nil)
		req.Host = "shop.test"

		page := New(req, Request{Number: 2, Size: 10}, 25, []int{11, 12})
		assert.Equal(t, int64(25), page.Count)
		require.NotNil(t, page.Next)
		require.NotNil(t, page.Previous)
		assert.Equal(t, "http://shop.test/api/v1/products?page=3&search=tea", *page.Next)
		assert.Equal(t, "http://shop.test/api/v1/products?search=tea", *page.Previous)
	})

	t.Run("Single page has no links", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products", nil)

		page := New[int](req, Request{Number: 1, Size: 10}, 0, nil)
		assert.Nil(t, page.Next)
		assert.Nil(t, page.Previous)
		assert.NotNil(t, page.Results)
		assert.Empty(t, page.Results)
	})

	t.Run("TLS and forwarded scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products", nil)
		req.Host = "shop.test"
		req.TLS = &tls.ConnectionState{}

		page := New(req, Request{Number: 1, Size: 1}, 2, []int{1})
		require.NotNil(t, page.Next)
		assert.Equal(t, "https://shop.test/api/v1/products?page=2", *page.Next)

		req.TLS = nil
		req.Header.Set("X-Forwarded-Proto", "https")
		page = New(req, Request{Number: 1, Size: 1}, 2, []int{1})
		assert.Equal(t, "https://shop.test/api/v1/products?page=2", *page.Next)
	})
}
