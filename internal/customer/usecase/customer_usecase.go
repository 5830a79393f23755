package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/listing"
	"github.com/invoicedash/dashboard/internal/pagecache"
	customValidation "github.com/invoicedash/dashboard/internal/validation"
)

const optionsCacheKey = "options"

// customerUseCase implements CustomerUseCase.
type customerUseCase struct {
	customerRepo  CustomerRepository
	cache         pagecache.Cache
	customersPath string
	itemsPerPage  int
	logger        *slog.Logger
}

// NewCustomerUseCase creates a new CustomerUseCase. customersPath is the listing revalidated
// and navigated to after a customer is created.
func NewCustomerUseCase(
	customerRepo CustomerRepository,
	cache pagecache.Cache,
	customersPath string,
	itemsPerPage int,
	logger *slog.Logger,
) CustomerUseCase {
	if itemsPerPage <= 0 {
		itemsPerPage = 6
	}
	return &customerUseCase{
		customerRepo:  customerRepo,
		cache:         cache,
		customersPath: customersPath,
		itemsPerPage:  itemsPerPage,
		logger:        logger,
	}
}

// emailAvailableRule adapts IsEmailAvailable to a validation rule.
func (c *customerUseCase) emailAvailableRule(ctx context.Context, value interface{}) error {
	email, _ := value.(string)
	available, err := c.IsEmailAvailable(ctx, email)
	if err != nil {
		return validation.NewInternalError(err)
	}
	if !available {
		return validation.NewError("validation_email_taken", customerDomain.MsgEmailTaken)
	}
	return nil
}

// Create validates the submission and inserts the customer with the default avatar.
func (c *customerUseCase) Create(ctx context.Context, values form.Values) (form.Result, error) {
	f := newCustomerForm(values)

	if err := f.ValidateWithContext(ctx, c.emailAvailableRule); err != nil {
		if cause, ok := customValidation.InternalCause(err); ok {
			return form.Failed(customerDomain.MsgCheckEmails), cause
		}
		errs, _ := customValidation.FieldErrors(err)
		return form.Invalid(errs, customerDomain.MsgMissingFieldsCreate), nil
	}

	customer := &customerDomain.Customer{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     f.Name,
		Email:    f.Email,
		ImageURL: customerDomain.DefaultImageURL,
	}

	if err := c.customerRepo.Create(ctx, customer); err != nil {
		// lost a race with a concurrent insert of the same email
		if apperrors.Is(err, customerDomain.ErrCustomerAlreadyExists) {
			return form.Invalid(
				map[string][]string{"email": {customerDomain.MsgEmailTaken}},
				customerDomain.MsgMissingFieldsCreate,
			), nil
		}
		return form.Failed(customerDomain.MsgDatabaseCreate), err
	}

	if err := c.cache.Revalidate(ctx, c.customersPath); err != nil {
		c.logger.Warn("failed to revalidate path", slog.String("path", c.customersPath), slog.Any("error", err))
	}

	return form.Success(c.customersPath), nil
}

// IsEmailAvailable reports whether no customer uses email.
func (c *customerUseCase) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := c.customerRepo.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%w: %w", customerDomain.ErrEmailCheckFailed, err)
	}
	return !exists, nil
}

// List returns one page of the filtered customer listing, served from the page cache when possible.
func (c *customerUseCase) List(
	ctx context.Context,
	query string,
	page int,
) (*customerDomain.CustomerPage, error) {
	query, page = listing.Normalize(query, page)

	key := listing.CacheKey(query, page)
	var cached customerDomain.CustomerPage
	entry, readable := c.cacheGet(ctx, key, &cached)
	if entry.Hit {
		return &cached, nil
	}

	var (
		items []*customerDomain.CustomerListItem
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = c.customerRepo.ListFiltered(gctx, query, c.itemsPerPage, listing.Offset(page, c.itemsPerPage))
		return err
	})
	g.Go(func() error {
		var err error
		count, err = c.customerRepo.CountFiltered(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*customerDomain.CustomerListItem{}
	}
	result := &customerDomain.CustomerPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  listing.TotalPages(count, c.itemsPerPage),
	}

	if readable {
		c.cacheSet(ctx, key, entry.Generation, result)
	}
	return result, nil
}

// Options returns every customer as a select option, ordered by name.
func (c *customerUseCase) Options(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	var cached []*customerDomain.CustomerOption
	entry, readable := c.cacheGet(ctx, optionsCacheKey, &cached)
	if entry.Hit {
		return cached, nil
	}

	options, err := c.customerRepo.ListOptions(ctx)
	if err != nil {
		return nil, err
	}

	if readable {
		c.cacheSet(ctx, optionsCacheKey, entry.Generation, options)
	}
	return options, nil
}

// cacheGet looks key up in the customers listing cache. readable is false when
// the cache could not be read, in which case nothing should be written back.
func (c *customerUseCase) cacheGet(ctx context.Context, key string, dst any) (entry pagecache.Entry, readable bool) {
	entry, err := pagecache.GetJSON(ctx, c.cache, c.customersPath, key, dst)
	if err != nil {
		c.logger.Warn("page cache read failed", slog.String("path", c.customersPath), slog.Any("error", err))
		return pagecache.Entry{}, false
	}
	return entry, true
}

func (c *customerUseCase) cacheSet(ctx context.Context, key string, generation int64, value any) {
	if err := pagecache.SetJSON(ctx, c.cache, c.customersPath, key, generation, value); err != nil {
		c.logger.Warn("page cache write failed", slog.String("path", c.customersPath), slog.Any("error", err))
	}
}
