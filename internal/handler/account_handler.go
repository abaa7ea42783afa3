package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eaglebank/customer-account-service/internal/cqrs"
	"github.com/eaglebank/customer-account-service/internal/middleware"
	"github.com/eaglebank/customer-account-service/internal/models"
	"github.com/eaglebank/customer-account-service/internal/repository"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.Account, error)
	UpdateAccountStatus(context.Context, cqrs.UpdateAccountStatusCommand) (*models.Account, error)
	UpdateAccountBalance(context.Context, cqrs.UpdateAccountBalanceCommand) (*models.Account, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) (bool, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.Account, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.Account, error)
	ListCustomerAccounts(context.Context, cqrs.ListCustomerAccountsQuery) ([]models.Account, error)
	SearchAccounts(context.Context, cqrs.SearchAccountsQuery) ([]models.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
	log      *slog.Logger
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

type UpdateBalanceRequest struct {
	Balance string `json:"balance" validate:"notblank"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier, log *slog.Logger) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries, log: log}
}

// RegisterRoutes mounts the account endpoints on rg, normally /api/v1/accounts.
func (h *AccountHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("", h.ListAccounts)
	rg.GET("/search", h.SearchAccounts)
	rg.GET("/customer/:customerId", h.GetCustomerAccounts)
	rg.GET("/:accountNumber", h.GetAccount)
	rg.POST("", h.CreateAccount)
	rg.PUT("/:accountNumber", h.UpdateAccount)
	rg.DELETE("/:accountNumber", h.DeleteAccount)
	rg.PATCH("/:accountNumber/status", h.UpdateAccountStatus)
	rg.PATCH("/:accountNumber/balance", h.UpdateAccountBalance)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		h.internalError(c, "list accounts", err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) SearchAccounts(c *gin.Context) {
	var q cqrs.SearchAccountsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if validationErrors := middleware.ValidateRequest(q); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	accounts, err := h.queries.SearchAccounts(c.Request.Context(), q)
	if err != nil {
		h.internalError(c, "search accounts", err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountNumber: c.Param("accountNumber"),
	})
	if err != nil {
		h.lookupError(c, "get account", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetCustomerAccounts answers 404 when the customer holds no accounts.
func (h *AccountHandler) GetCustomerAccounts(c *gin.Context) {
	customerID := c.Param("customerId")

	accounts, err := h.queries.ListCustomerAccounts(c.Request.Context(), cqrs.ListCustomerAccountsQuery{
		CustomerID: customerID,
	})
	if err != nil {
		h.internalError(c, "list customer accounts", err)
		return
	}
	if len(accounts) == 0 {
		middleware.RespondWithError(c, http.StatusNotFound, "No accounts found for customer")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req models.Account
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{Account: req})
	if err != nil {
		h.internalError(c, "create account", err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req models.Account
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountNumber: c.Param("accountNumber"),
		Account:       req,
	})
	if err != nil {
		h.lookupError(c, "update account", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	deleted, err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{
		AccountNumber: accountNumber,
	})
	if err != nil {
		h.internalError(c, "delete account", err)
		return
	}
	if !deleted {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}
	c.String(http.StatusOK, "Account %s deleted successfully", accountNumber)
}

func (h *AccountHandler) UpdateAccountStatus(c *gin.Context) {
	value, err := rawValue(c)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req := UpdateStatusRequest{Status: value}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.UpdateAccountStatus(c.Request.Context(), cqrs.UpdateAccountStatusCommand{
		AccountNumber: c.Param("accountNumber"),
		Status:        req.Status,
	})
	if err != nil {
		h.lookupError(c, "update account status", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccountBalance(c *gin.Context) {
	value, err := rawValue(c)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req := UpdateBalanceRequest{Balance: value}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.UpdateAccountBalance(c.Request.Context(), cqrs.UpdateAccountBalanceCommand{
		AccountNumber: c.Param("accountNumber"),
		Balance:       req.Balance,
	})
	if err != nil {
		h.lookupError(c, "update account balance", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// rawValue reads a single-value PATCH body. A JSON string ("SUSPENDED") is
// unquoted; anything else (SUSPENDED) is taken as sent. The value itself is
// never trimmed.
func rawValue(c *gin.Context) (string, error) {
	body, err := c.GetRawData()
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}
	return string(body), nil
}

func (h *AccountHandler) lookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, repository.ErrAccountNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}
	h.internalError(c, op, err)
}

func (h *AccountHandler) internalError(c *gin.Context, op string, err error) {
	h.log.ErrorContext(c.Request.Context(), "failed to "+op,
		"error", err,
		"requestId", middleware.GetRequestID(c),
	)
	middleware.RespondWithInternalError(c, err)
}
