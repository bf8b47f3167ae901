package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nats-io/nats.go"
)

// mediaPrefix is the serving path the HTTP tier proxies object reads under
const mediaPrefix = "/media/"

// objectStore keeps media blobs in a JetStream object store bucket. Clients
// cannot reach the bucket directly, so Save returns an absolute URL under the
// public base and the server streams the object back on GET /media/:name.
type objectStore struct {
	nc      *nats.Conn
	obs     nats.ObjectStore
	baseURL string
}

// NewObjectStore connects to NATS and binds the named object store bucket
func NewObjectStore(url, bucket, publicURL string) (Store, error) {
	nc, err := nats.Connect(url, nats.Name("busanhunt-media"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	obs, err := js.ObjectStore(bucket)
	if errors.Is(err, nats.ErrStreamNotFound) {
		obs, err = js.CreateObjectStore(&nats.ObjectStoreConfig{
			Bucket:      bucket,
			Description: "busanhunt media proofs",
		})
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open object store %q: %w", bucket, err)
	}

	return &objectStore{
		nc:      nc,
		obs:     obs,
		baseURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (o *objectStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if _, err := o.obs.PutBytes(name, data); err != nil {
		return "", fmt.Errorf("failed to store object %q: %w", name, err)
	}
	return o.baseURL + mediaPrefix + name, nil
}

func (o *objectStore) Delete(ctx context.Context, url string) error {
	// Only URLs with our base and serving prefix belong to this bucket
	if !strings.HasPrefix(url, o.baseURL+mediaPrefix) {
		return nil
	}

	name := strings.TrimPrefix(url, o.baseURL+mediaPrefix)
	err := o.obs.Delete(name)
	if errors.Is(err, nats.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", name, err)
	}
	return nil
}

func (o *objectStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	res, err := o.obs.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %q: %w", name, err)
	}
	return res, nil
}
