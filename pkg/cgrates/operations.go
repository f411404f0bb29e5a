package cgrates

import "context"

// Методы ниже тонкие обертки над Go, по одной на строку реестра.
// id опционален и попадает в "id" конверта.

// accounts

// GetAccounts список аккаунтов тенанта.
func (c *Client) GetAccounts(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetAccounts, params, firstID(id))
}

func (c *Client) GetAccount(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetAccount, params, firstID(id))
}

// GetMaxUsage ToR, Category и SetupTime подставляются, если не заданы.
func (c *Client) GetMaxUsage(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetMaxUsage, params, firstID(id))
}

func (c *Client) SetAccount(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetAccount, params, firstID(id))
}

func (c *Client) ExecuteAction(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpExecuteAction, params, firstID(id))
}

func (c *Client) RemoveAccount(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpRemoveAccount, params, firstID(id))
}

// balances

// CreateOrUpdateBalance нужен BalanceId или BalanceUUID.
func (c *Client) CreateOrUpdateBalance(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpCreateOrUpdateBalance, params, firstID(id))
}

func (c *Client) AddBalance(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpAddBalance, params, firstID(id))
}

func (c *Client) DebitBalance(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpDebitBalance, params, firstID(id))
}

func (c *Client) RemoveBalance(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpRemoveBalance, params, firstID(id))
}

// cdrs

// CreateCdr OriginID генерируется, если не задан.
func (c *Client) CreateCdr(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpCreateCdr, params, firstID(id))
}

// GetCdrs не поддерживается, всегда ErrNotImplemented.
func (c *Client) GetCdrs(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetCdrs, params, firstID(id))
}

// DeleteCdrs не поддерживается, всегда ErrNotImplemented.
func (c *Client) DeleteCdrs(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpDeleteCdrs, params, firstID(id))
}

// tariff plans

func (c *Client) SetTPDestination(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetTPDestination, params, firstID(id))
}

func (c *Client) SetTPRate(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetTPRate, params, firstID(id))
}

func (c *Client) SetTPDestinationRate(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetTPDestinationRate, params, firstID(id))
}

func (c *Client) SetTPRatingPlan(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetTPRatingPlan, params, firstID(id))
}

func (c *Client) SetTPRatingProfile(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetTPRatingProfile, params, firstID(id))
}

func (c *Client) LoadFromStorDB(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpLoadFromStorDB, params, firstID(id))
}

func (c *Client) LoadRatingPlan(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpLoadRatingPlan, params, firstID(id))
}

// suppliers

func (c *Client) GetSuppliers(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetSuppliers, params, firstID(id))
}

func (c *Client) GetSupplierProfileIDs(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetSupplierProfileIDs, params, firstID(id))
}

func (c *Client) GetSupplierProfile(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpGetSupplierProfile, params, firstID(id))
}

func (c *Client) SetSupplierProfile(ctx context.Context, params Params, id ...any) (*Call, error) {
	return c.Go(ctx, OpSetSupplierProfile, params, firstID(id))
}

// cache

// CacheClear всегда отправляет {"FlushAll": true}.
func (c *Client) CacheClear(ctx context.Context, id ...any) (*Call, error) {
	return c.Go(ctx, OpCacheClear, nil, firstID(id))
}

func firstID(ids []any) any {
	if len(ids) == 0 {
		return nil
	}
	return ids[0]
}
