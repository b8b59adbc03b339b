package checks

import (
	"context"
	"errors"
	"testing"

	"order-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckBucket(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		err     error
		wantErr string
	}{
		{"Exists", true, nil, ""},
		{"Missing", false, nil, "bucket orders does not exist"},
		{"Unreachable", false, errors.New("dial tcp: refused"), "failed to check bucket orders: dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("BucketExists", mock.Anything, "orders").Return(tt.exists, tt.err)

			err := CheckBucket(context.Background(), client, "orders")
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
			client.AssertExpectations(t)
		})
	}
}
