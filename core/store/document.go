package store

import (
	"context"
	"fmt"
	"sync"

	"order-manager/core/models"

	"go.uber.org/zap"
)

// Document names, one per collection.
const (
	StocksDocument     = "stocks.json"
	OrdersDocument     = "orders.json"
	CategoriesDocument = "categories.json"
)

// DocumentStore keeps each collection as a whole JSON document in a Blob and
// rewrites the document on every committed change.
//
// Updates are serialized behind one mutex. A commit writes only the documents
// the transaction changed; if a later write fails, documents already written
// are put back to their previous content. A crash between two writes can still
// leave them out of step.
type DocumentStore struct {
	blob   Blob
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewDocument creates a document store over blob.
func NewDocument(blob Blob, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{blob: blob, logger: logger}
}

func (s *DocumentStore) View(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(newDocTx(ctx, s.blob, false))
}

func (s *DocumentStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newDocTx(ctx, s.blob, true)
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.blob.Ping(ctx)
}

func (s *DocumentStore) Close() error {
	return nil
}

type document struct {
	name    string
	dirty   bool
	existed bool
	raw     []byte
	encode  func() ([]byte, error)
}

func (s *DocumentStore) commit(ctx context.Context, tx *docTx) error {
	docs := []document{
		{tx.categories.name, tx.categories.dirty, tx.categories.existed, tx.categories.raw, tx.categories.encode},
		{tx.stocks.name, tx.stocks.dirty, tx.stocks.existed, tx.stocks.raw, tx.stocks.encode},
		{tx.orders.name, tx.orders.dirty, tx.orders.existed, tx.orders.raw, tx.orders.encode},
	}

	var written []document
	for _, doc := range docs {
		if !doc.dirty {
			continue
		}

		data, err := doc.encode()
		if err != nil {
			s.restore(ctx, written)
			return fmt.Errorf("failed to encode %s: %w", doc.name, err)
		}
		if err := s.blob.Write(ctx, doc.name, data); err != nil {
			s.restore(ctx, written)
			return fmt.Errorf("failed to write %s: %w", doc.name, err)
		}
		written = append(written, doc)
	}
	return nil
}

// restore puts written documents back to what they held before the commit.
func (s *DocumentStore) restore(ctx context.Context, written []document) {
	ctx = context.WithoutCancel(ctx)
	for i := len(written) - 1; i >= 0; i-- {
		doc := written[i]

		var err error
		if doc.existed {
			err = s.blob.Write(ctx, doc.name, doc.raw)
		} else {
			err = s.blob.Remove(ctx, doc.name)
		}
		if err != nil {
			s.logger.Error("Failed to restore document after partial commit",
				zap.String("document", doc.name), zap.Error(err))
			continue
		}
		s.logger.Warn("Restored document after partial commit", zap.String("document", doc.name))
	}
}

type docTx struct {
	ctx      context.Context
	blob     Blob
	writable bool

	stocks     *collection[models.Stock]
	orders     *collection[models.Order]
	categories *collection[models.Category]
}

func newDocTx(ctx context.Context, blob Blob, writable bool) *docTx {
	return &docTx{
		ctx:        ctx,
		blob:       blob,
		writable:   writable,
		stocks:     &collection[models.Stock]{name: StocksDocument, key: func(s *models.Stock) string { return s.ID }},
		orders:     &collection[models.Order]{name: OrdersDocument, key: func(o *models.Order) string { return o.ID }},
		categories: &collection[models.Category]{name: CategoriesDocument, key: func(c *models.Category) string { return c.Slug }},
	}
}

func (t *docTx) ListStocks() ([]models.Stock, error) {
	if err := t.stocks.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	stocks := t.stocks.list()
	for i := range stocks {
		stocks[i].Sizes = stocks[i].Sizes.Clone()
	}
	SortStocks(stocks)
	return stocks, nil
}

func (t *docTx) GetStock(id string) (*models.Stock, error) {
	if err := t.stocks.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	stock, ok := t.stocks.get(id)
	if !ok {
		return nil, fmt.Errorf("stock %s: %w", id, ErrNotFound)
	}
	stock.Sizes = stock.Sizes.Clone()
	return &stock, nil
}

func (t *docTx) SaveStock(stock *models.Stock) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.stocks.load(t.ctx, t.blob); err != nil {
		return err
	}
	saved := *stock
	saved.Sizes = stock.Sizes.Clone()
	t.stocks.put(saved)
	return nil
}

func (t *docTx) DeleteStock(id string) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.stocks.load(t.ctx, t.blob); err != nil {
		return err
	}
	if !t.stocks.remove(id) {
		return fmt.Errorf("stock %s: %w", id, ErrNotFound)
	}
	return nil
}

func (t *docTx) ListOrders() ([]models.Order, error) {
	if err := t.orders.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	orders := t.orders.list()
	SortOrders(orders)
	return orders, nil
}

func (t *docTx) GetOrder(id string) (*models.Order, error) {
	if err := t.orders.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	order, ok := t.orders.get(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

func (t *docTx) SaveOrder(order *models.Order) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.orders.load(t.ctx, t.blob); err != nil {
		return err
	}
	t.orders.put(*order)
	return nil
}

func (t *docTx) DeleteOrder(id string) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.orders.load(t.ctx, t.blob); err != nil {
		return err
	}
	if !t.orders.remove(id) {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

func (t *docTx) ListCategories() ([]models.Category, error) {
	if err := t.categories.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	categories := t.categories.list()
	SortCategories(categories)
	return categories, nil
}

func (t *docTx) GetCategory(slug string) (*models.Category, error) {
	if err := t.categories.load(t.ctx, t.blob); err != nil {
		return nil, err
	}
	category, ok := t.categories.get(slug)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", slug, ErrNotFound)
	}
	return &category, nil
}

func (t *docTx) SaveCategory(category *models.Category) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.categories.load(t.ctx, t.blob); err != nil {
		return err
	}
	t.categories.put(*category)
	return nil
}

func (t *docTx) DeleteCategory(slug string) error {
	if !t.writable {
		return ErrReadOnly
	}
	if err := t.categories.load(t.ctx, t.blob); err != nil {
		return err
	}
	if !t.categories.remove(slug) {
		return fmt.Errorf("category %s: %w", slug, ErrNotFound)
	}
	return nil
}
