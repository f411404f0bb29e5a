package cgrates

import (
	"fmt"
	"maps"
	"slices"
)

const (
	OpGetAccounts           = "getAccounts"
	OpGetAccount            = "getAccount"
	OpGetMaxUsage           = "getMaxUsage"
	OpSetAccount            = "setAccount"
	OpExecuteAction         = "executeAction"
	OpRemoveAccount         = "removeAccount"
	OpCreateOrUpdateBalance = "createOrUpdateBalance"
	OpAddBalance            = "addBalance"
	OpDebitBalance          = "debitBalance"
	OpRemoveBalance         = "removeBalance"
	OpCreateCdr             = "createCdr"
	OpGetCdrs               = "getCdrs"
	OpDeleteCdrs            = "deleteCdrs"
	OpSetTPDestination      = "setTPDestination"
	OpSetTPRate             = "setTPRate"
	OpSetTPDestinationRate  = "setTPDestinationRate"
	OpSetTPRatingPlan       = "setTPRatingPlan"
	OpSetTPRatingProfile    = "setTPRatingProfile"
	OpLoadFromStorDB        = "loadFromStorDB"
	OpLoadRatingPlan        = "loadRatingPlan"
	OpGetSuppliers          = "getSuppliers"
	OpGetSupplierProfileIDs = "getSupplierProfileIDs"
	OpGetSupplierProfile    = "getSupplierProfile"
	OpSetSupplierProfile    = "setSupplierProfile"
	OpCacheClear            = "cacheClear"
)

// Operation описание одного RPC-метода. Таблица ниже не меняется в рантайме.
type Operation struct {
	Name     string
	Method   string
	Defaults []Default
	Rules    []Rule

	// Fixed заменяет параметры вызывающего целиком.
	Fixed Params

	// Unimplemented метод объявлен, но не поддерживается.
	Unimplemented bool
}

var (
	balanceDefaults = []Default{{Field: "BalanceType", Generate: Constant("*monetary")}}
	balanceRef      = RequireOneOf("BalanceId", "BalanceUUID")
)

var operations = []Operation{
	// accounts
	{
		Name:   OpGetAccounts,
		Method: "ApierV2.GetAccounts",
		Rules:  []Rule{Require("Tenant")},
	},
	{
		Name:   OpGetAccount,
		Method: "ApierV2.GetAccount",
		Rules:  []Rule{Require("Tenant", "Account")},
	},
	{
		Name:     OpGetMaxUsage,
		Method:   "ApierV1.GetMaxUsage",
		Defaults: []Default{
			{Field: "ToR", Generate: Constant("*sms")},
			{Field: "Category", Generate: Constant("call")},
			{Field: "SetupTime", Generate: Timestamp()},
		},
		Rules: []Rule{Require("Tenant", "Account", "Destination", "Usage")},
	},
	{
		Name:   OpSetAccount,
		Method: "ApierV2.SetAccount",
		Rules:  []Rule{Require("Tenant", "Account")},
	},
	{
		Name:   OpExecuteAction,
		Method: "ApierV1.ExecuteAction",
		Rules:  []Rule{Require("Tenant", "Account", "ActionsId")},
	},
	{
		Name:   OpRemoveAccount,
		Method: "ApierV1.RemoveAccount",
		Rules:  []Rule{Require("Tenant", "Account")},
	},

	// balances
	{
		Name:     OpCreateOrUpdateBalance,
		Method:   "ApierV1.SetBalance",
		Defaults: balanceDefaults,
		Rules:    []Rule{Require("Tenant", "Account"), balanceRef},
	},
	{
		Name:     OpAddBalance,
		Method:   "ApierV1.AddBalance",
		Defaults: balanceDefaults,
		Rules:    []Rule{Require("Tenant", "Account"), balanceRef, Require("Value")},
	},
	{
		Name:     OpDebitBalance,
		Method:   "ApierV1.DebitBalance",
		Defaults: balanceDefaults,
		Rules:    []Rule{Require("Tenant", "Account"), balanceRef, Require("Value")},
	},
	{
		Name:     OpRemoveBalance,
		Method:   "ApierV1.RemoveBalances",
		Defaults: balanceDefaults,
		Rules:    []Rule{Require("Tenant", "Account"), balanceRef},
	},

	// cdrs
	{
		Name:     OpCreateCdr,
		Method:   "CdrsV1.ProcessExternalCdr",
		Defaults: []Default{{Field: "OriginID", Generate: RandomID()}},
		Rules:    []Rule{Require("Tenant", "Account")},
	},
	{
		Name:          OpGetCdrs,
		Method:        "ApierV2.GetCdrs",
		Unimplemented: true,
	},
	{
		Name:          OpDeleteCdrs,
		Method:        "ApierV1.RemoveCDRs",
		Unimplemented: true,
	},

	// tariff plans
	{
		Name:   OpSetTPDestination,
		Method: "ApierV1.SetTPDestination",
		Rules:  []Rule{Require("TPid", "ID", "Prefixes")},
	},
	{
		Name:   OpSetTPRate,
		Method: "ApierV1.SetTPRate",
		Rules:  []Rule{Require("TPid", "ID", "RateSlots")},
	},
	{
		Name:   OpSetTPDestinationRate,
		Method: "ApierV1.SetTPDestinationRate",
		Rules:  []Rule{Require("TPid", "ID", "DestinationRates")},
	},
	{
		Name:   OpSetTPRatingPlan,
		Method: "ApierV1.SetTPRatingPlan",
		Rules:  []Rule{Require("TPid", "ID", "RatingPlanBindings")},
	},
	{
		Name:   OpSetTPRatingProfile,
		Method: "ApierV1.SetTPRatingProfile",
		Rules:  []Rule{Require("TPid", "LoadId", "Tenant", "Category", "Subject", "RatingPlanActivations")},
	},
	{
		Name:   OpLoadFromStorDB,
		Method: "ApierV1.LoadTariffPlanFromStorDb",
		Rules:  []Rule{Require("TPid")},
	},
	{
		Name:   OpLoadRatingPlan,
		Method: "ApierV1.LoadRatingPlan",
		Rules:  []Rule{Require("TPid", "RatingPlanId")},
	},

	// suppliers
	{
		Name:     OpGetSuppliers,
		Method:   "SupplierSv1.GetSuppliers",
		Defaults: []Default{{Field: "ID", Generate: RandomID()}},
		Rules:    []Rule{Require("Tenant", "ID", "Event")},
	},
	{
		Name:   OpGetSupplierProfileIDs,
		Method: "ApierV1.GetSupplierProfileIDs",
		Rules:  []Rule{Require("Tenant")},
	},
	{
		Name:   OpGetSupplierProfile,
		Method: "ApierV1.GetSupplierProfile",
		Rules:  []Rule{Require("Tenant", "ID")},
	},
	{
		Name:   OpSetSupplierProfile,
		Method: "ApierV1.SetSupplierProfile",
		Rules:  []Rule{Require("Tenant", "ID", "ActivationInterval", "Sorting", "Suppliers")},
	},

	// cache
	{
		Name:   OpCacheClear,
		Method: "ApierV1.FlushCache",
		Fixed:  Params{"FlushAll": true},
	},
}

var registry = func() map[string]Operation {
	result := make(map[string]Operation, len(operations))
	for _, op := range operations {
		if _, ok := result[op.Name]; ok {
			panic(fmt.Sprintf("duplicate operation %q", op.Name))
		}
		result[op.Name] = op
	}
	return result
}()

func Lookup(name string) (Operation, bool) {
	op, ok := registry[name]
	return op, ok
}

// Names отсортированный список всех операций.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// prepare применяет значения по умолчанию к копии params и проверяет правила
// по порядку, до первой ошибки.
func (op Operation) prepare(params Params) (Params, error) {
	if op.Unimplemented {
		return nil, fmt.Errorf("%s (%s): %w", op.Name, op.Method, ErrNotImplemented)
	}

	if op.Fixed != nil {
		return op.Fixed.clone(), nil
	}

	p := params.clone()

	for _, d := range op.Defaults {
		if !p.Has(d.Field) {
			p[d.Field] = d.Generate()
		}
	}

	for _, rule := range op.Rules {
		if err := rule.Check(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}
