package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// natsKV adapts a JetStream KeyValue bucket to the KV contract. The bucket is
// created on first use so a fresh NATS deployment needs no manual setup.
type natsKV struct {
	nc *nats.Conn
	kv nats.KeyValue
}

// NewNATSKV connects to the NATS server and binds the named bucket
func NewNATSKV(url, bucket string) (KV, error) {
	nc, err := nats.Connect(url, nats.Name("busanhunt-server"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "busanhunt team collection",
		})
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to open KV bucket %q: %w", bucket, err)
	}

	return &natsKV{nc: nc, kv: kv}, nil
}

func (n *natsKV) Exists(ctx context.Context, key string) (bool, error) {
	_, err := n.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check key %q: %w", key, err)
	}
	return true, nil
}

func (n *natsKV) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := n.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return entry.Value(), nil
}

func (n *natsKV) Set(ctx context.Context, key string, value []byte) error {
	if _, err := n.kv.Put(key, value); err != nil {
		return fmt.Errorf("failed to put key %q: %w", key, err)
	}
	return nil
}

func (n *natsKV) Close() error {
	n.nc.Close()
	return nil
}
