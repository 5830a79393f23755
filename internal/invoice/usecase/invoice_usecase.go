package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/invoicedash/dashboard/internal/form"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	"github.com/invoicedash/dashboard/internal/listing"
	"github.com/invoicedash/dashboard/internal/pagecache"
)

// invoiceUseCase implements InvoiceUseCase.
type invoiceUseCase struct {
	invoiceRepo   InvoiceRepository
	cache         pagecache.Cache
	invoicesPath  string
	customersPath string
	itemsPerPage  int
	logger        *slog.Logger
	now           func() time.Time
}

// NewInvoiceUseCase creates a new InvoiceUseCase. invoicesPath is the listing revalidated
// and navigated to after a successful mutation. customersPath is revalidated as well
// because the customer listing carries invoice totals.
func NewInvoiceUseCase(
	invoiceRepo InvoiceRepository,
	cache pagecache.Cache,
	invoicesPath string,
	customersPath string,
	itemsPerPage int,
	logger *slog.Logger,
) InvoiceUseCase {
	if itemsPerPage <= 0 {
		itemsPerPage = 6
	}
	return &invoiceUseCase{
		invoiceRepo:   invoiceRepo,
		cache:         cache,
		invoicesPath:  invoicesPath,
		customersPath: customersPath,
		itemsPerPage:  itemsPerPage,
		logger:        logger,
		now:           time.Now,
	}
}

// Create validates the submission and inserts a new invoice dated today (UTC).
func (i *invoiceUseCase) Create(ctx context.Context, values form.Values) (form.Result, error) {
	fields, errs := parseInvoiceForm(values)
	if errs != nil {
		return form.Invalid(errs, invoiceDomain.MsgMissingFieldsCreate), nil
	}

	invoice := &invoiceDomain.Invoice{
		ID:         uuid.Must(uuid.NewV7()),
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
		Date:       invoiceDomain.Today(i.now()),
	}

	if err := i.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, invoiceDomain.ErrUnknownCustomer) {
			return unknownCustomer(invoiceDomain.MsgMissingFieldsCreate), nil
		}
		return form.Failed(invoiceDomain.MsgDatabaseCreate), err
	}

	i.revalidate(ctx)
	return form.Success(i.invoicesPath), nil
}

// Update validates the submission and overwrites customer, amount and status.
// The date is left untouched and an unknown id succeeds without changing anything.
func (i *invoiceUseCase) Update(
	ctx context.Context,
	invoiceID uuid.UUID,
	values form.Values,
) (form.Result, error) {
	fields, errs := parseInvoiceForm(values)
	if errs != nil {
		return form.Invalid(errs, invoiceDomain.MsgMissingFieldsUpdate), nil
	}

	invoice := &invoiceDomain.Invoice{
		ID:         invoiceID,
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
	}

	if err := i.invoiceRepo.Update(ctx, invoice); err != nil {
		if errors.Is(err, invoiceDomain.ErrUnknownCustomer) {
			return unknownCustomer(invoiceDomain.MsgMissingFieldsUpdate), nil
		}
		return form.Failed(invoiceDomain.MsgDatabaseUpdate), err
	}

	i.revalidate(ctx)
	return form.Success(i.invoicesPath), nil
}

// Delete removes an invoice and revalidates the listing. The caller stays in place.
func (i *invoiceUseCase) Delete(ctx context.Context, invoiceID uuid.UUID) (form.Result, error) {
	if err := i.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return form.Failed(invoiceDomain.MsgDatabaseDelete), err
	}

	i.revalidate(ctx)
	return form.Success(""), nil
}

// List returns one page of the filtered listing, served from the page cache when possible.
func (i *invoiceUseCase) List(ctx context.Context, query string, page int) (*invoiceDomain.InvoicePage, error) {
	query, page = listing.Normalize(query, page)

	key := listing.CacheKey(query, page)
	var cached invoiceDomain.InvoicePage
	entry, cacheErr := pagecache.GetJSON(ctx, i.cache, i.invoicesPath, key, &cached)
	if cacheErr != nil {
		i.logger.Warn("page cache read failed", slog.String("path", i.invoicesPath), slog.Any("error", cacheErr))
	} else if entry.Hit {
		return &cached, nil
	}

	var (
		items []*invoiceDomain.InvoiceListItem
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = i.invoiceRepo.ListFiltered(gctx, query, i.itemsPerPage, listing.Offset(page, i.itemsPerPage))
		return err
	})
	g.Go(func() error {
		var err error
		count, err = i.invoiceRepo.CountFiltered(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*invoiceDomain.InvoiceListItem{}
	}
	result := &invoiceDomain.InvoicePage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  listing.TotalPages(count, i.itemsPerPage),
	}

	// without a generation the page cannot be tied to what it was loaded from
	if cacheErr == nil {
		if err := pagecache.SetJSON(ctx, i.cache, i.invoicesPath, key, entry.Generation, result); err != nil {
			i.logger.Warn("page cache write failed", slog.String("path", i.invoicesPath), slog.Any("error", err))
		}
	}

	return result, nil
}

// revalidate drops the cached invoices and customers listings. The mutation has
// already been committed, so a failure is only logged.
func (i *invoiceUseCase) revalidate(ctx context.Context) {
	for _, path := range []string{i.invoicesPath, i.customersPath} {
		if err := i.cache.Revalidate(ctx, path); err != nil {
			i.logger.Warn("failed to revalidate path", slog.String("path", path), slog.Any("error", err))
		}
	}
}
