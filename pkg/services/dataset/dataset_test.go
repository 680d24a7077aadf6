package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	store "github.com/de-tools/commerce-atlas/pkg/store/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = map[string]string{
	store.SourceOrders: `order_id,customer_id,order_status,order_purchase_timestamp
o1,c1,delivered,2017-03-01 10:15:00
o2,c2,shipped,2017-04-02 09:00:00
`,
	store.SourceItems: `order_id,product_id,price,freight_value
o1,p1,10.0,2.0
`,
	store.SourcePayments: `order_id,payment_type,payment_value
o1,credit_card,12.0
`,
	store.SourceProducts: `product_id,product_category_name
p1,toys
`,
	store.SourceCustomers: `customer_id,customer_state
c1,SP
c2,RJ
`,
}

func writeFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		path := filepath.Join(dir, store.FileNames[name])
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLocalFiles_Load(t *testing.T) {
	p := LocalFiles{Dir: writeFixtureDir(t)}

	ds, err := p.Load()
	require.NoError(t, err)
	assert.Len(t, ds.Orders, 2)
	assert.Equal(t, []string{"RJ", "SP"}, ds.States)
}

func TestLocalFiles_MissingFile(t *testing.T) {
	dir := writeFixtureDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, store.FileNames[store.SourceProducts])))

	_, err := LocalFiles{Dir: dir}.Load()
	var missing *store.MissingSourceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, store.SourceProducts, missing.Source)
}

type countingProvider struct {
	key   string
	loads int
}

func (p *countingProvider) Key() string { return p.key }

func (p *countingProvider) Load() (*domain.Dataset, error) {
	p.loads++
	return domain.NewDataset(nil, nil, nil, nil, nil), nil
}

func TestCache_LoadsOncePerKey(t *testing.T) {
	cache := NewCache()
	p := &countingProvider{key: "test:a"}
	ctx := context.Background()

	first, err := cache.Load(ctx, p)
	require.NoError(t, err)
	second, err := cache.Load(ctx, p)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, p.loads)

	active, ok := cache.Active()
	require.True(t, ok)
	assert.Same(t, first, active)
}

func TestCache_Invalidate(t *testing.T) {
	cache := NewCache()
	p := &countingProvider{key: "test:a"}
	ctx := context.Background()

	_, err := cache.Load(ctx, p)
	require.NoError(t, err)

	cache.Invalidate(p.key)
	_, ok := cache.Active()
	assert.False(t, ok)

	_, err = cache.Load(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, p.loads)
}

func TestCache_ReplaceDropsPrevious(t *testing.T) {
	cache := NewCache()
	a := &countingProvider{key: "test:a"}
	b := &countingProvider{key: "test:b"}
	ctx := context.Background()

	_, err := cache.Load(ctx, a)
	require.NoError(t, err)

	_, err = cache.Replace(ctx, b)
	require.NoError(t, err)

	_, ok := cache.Active()
	assert.True(t, ok)

	// The previous entry is gone, so loading it again re-reads.
	_, err = cache.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 2, a.loads)
}

func TestCache_ReplaceSameKeyKeepsEntry(t *testing.T) {
	cache := NewCache()
	p := &countingProvider{key: "test:a"}
	ctx := context.Background()

	_, err := cache.Load(ctx, p)
	require.NoError(t, err)
	_, err = cache.Replace(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, 1, p.loads)
	_, ok := cache.Active()
	assert.True(t, ok)
}

func TestSession_AwaitingUntilComplete(t *testing.T) {
	sessions := NewSessionStore()
	s := sessions.Create()
	require.NotEmpty(t, s.ID)

	assert.False(t, s.Ready())
	assert.Equal(t, store.SourceNames, s.Missing())

	_, err := s.Provider()
	require.Error(t, err, "awaiting session must not be loadable")

	for name, content := range fixtures {
		_, err := sessions.Attach(s.ID, name, []byte(content))
		require.NoError(t, err)
	}

	assert.True(t, s.Ready())
	assert.Empty(t, s.Missing())
	assert.Equal(t, store.SourceNames, s.Received())

	p, err := s.Provider()
	require.NoError(t, err)
	ds, err := p.Load()
	require.NoError(t, err)
	assert.Len(t, ds.Orders, 2)
}

func TestSession_ConcurrentAttachAndStatus(t *testing.T) {
	// Status reads must stay safe while sources are being attached; run
	// under the race detector.
	sessions := NewSessionStore()
	s := sessions.Create()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, name := range store.SourceNames {
				_, err := sessions.Attach(s.ID, name, []byte("x"))
				assert.NoError(t, err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Received()
			s.Missing()
			s.Ready()
		}
	}()

	wg.Wait()
	assert.True(t, s.Ready())
	assert.Empty(t, s.Missing())
}

func TestSessionStore_AttachValidation(t *testing.T) {
	sessions := NewSessionStore()
	s := sessions.Create()

	_, err := sessions.Attach(s.ID, "refunds", nil)
	assert.Error(t, err)

	_, err = sessions.Attach("nope", store.SourceOrders, nil)
	assert.Error(t, err)
}

func TestUploadedStreams_KeyIsContentAddressed(t *testing.T) {
	a := UploadedStreams{Content: map[string][]byte{store.SourceOrders: []byte("x")}}
	b := UploadedStreams{Content: map[string][]byte{store.SourceOrders: []byte("x")}}
	c := UploadedStreams{Content: map[string][]byte{store.SourceOrders: []byte("y")}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
