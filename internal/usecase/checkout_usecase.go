package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"vitrine/internal/domain/model"
	"vitrine/internal/money"
	repo "vitrine/internal/repository"
	"vitrine/internal/whatsapp"
)

// CheckoutMode selects how a finalized order leaves the gateway.
type CheckoutMode string

const (
	// ModeBackend posts the order to the storefront checkout endpoint
	// and gets an order id back before opening WhatsApp.
	ModeBackend CheckoutMode = "backend"
	// ModeDirect skips the backend and only composes the WhatsApp
	// message from local cart state.
	ModeDirect CheckoutMode = "direct"
)

// CheckoutUsecase runs the order submission state machine:
// Idle -> Submitting -> {Succeeded, Failed} -> Idle. At most one
// submission per session is in flight; a second attempt while busy is
// dropped, not queued. Failure leaves the cart untouched so the
// shopper can retry; success clears it.
type CheckoutUsecase struct {
	carts   repo.CartStore
	source  repo.StorefrontSource
	sink    repo.OrderSink
	mode    CheckoutMode
	timeout time.Duration
	log     *logrus.Logger

	inflight sync.Map // sessionID -> struct{}
}

// DI
func NewCheckoutUsecase(
	carts repo.CartStore,
	source repo.StorefrontSource,
	sink repo.OrderSink,
	mode CheckoutMode,
	timeout time.Duration,
	log *logrus.Logger,
) *CheckoutUsecase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CheckoutUsecase{
		carts:   carts,
		source:  source,
		sink:    sink,
		mode:    mode,
		timeout: timeout,
		log:     log,
	}
}

type SubmitInput struct {
	Identifier       string
	CustomerName     string
	CustomerWhatsapp string
}

type CheckoutOutput struct {
	OrderID      int64  `json:"pedido_id,omitempty"`
	Total        int64  `json:"total_centavos"`
	TotalLabel   string `json:"total"`
	Message      string `json:"mensagem"`
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}

// Busy reports whether the session has a submission in flight. The UI
// uses it to disable the checkout control.
func (u *CheckoutUsecase) Busy(sessionID string) bool {
	_, busy := u.inflight.Load(sessionID)
	return busy
}

// Submit validates preconditions, submits (or composes) the order and
// clears the cart on success. Validation failures, backend rejections
// and transport failures are all recoverable; the busy guard is
// released on every exit path.
func (u *CheckoutUsecase) Submit(ctx context.Context, sessionID string, in SubmitInput) (CheckoutOutput, error) {
	if sessionID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}

	// Single-flight guard. A double-click lands here while the first
	// submission still runs and is rejected, never queued.
	if _, busy := u.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return CheckoutOutput{}, NewHTTPError(http.StatusConflict, "checkout already in progress")
	}
	defer u.inflight.Delete(sessionID)

	cart, err := u.carts.Get(ctx, sessionID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "cart store error")
	}
	if cart.IsEmpty() {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "missing name")
	}
	contact := strings.TrimSpace(in.CustomerWhatsapp)
	if u.mode == ModeBackend && contact == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "missing contact")
	}

	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		identifier = cart.Slug
	}

	sf, err := u.source.Fetch(ctx, identifier)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "store not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "storefront unavailable")
	}

	if u.mode == ModeDirect && !sf.Store.HasWhatsapp() {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "store not configured")
	}

	var (
		orderID int64
		total   = cart.TotalValue()
	)

	if u.mode == ModeBackend {
		subCtx, cancel := context.WithTimeout(ctx, u.timeout)
		defer cancel()

		conf, err := u.sink.Submit(subCtx, repo.OrderSubmission{
			Slug:             identifier,
			CustomerName:     name,
			CustomerWhatsapp: contact,
			Items:            cart.Snapshot(),
		})
		if err != nil {
			// Failed: the cart stays as it was so a retry works.
			return CheckoutOutput{}, u.mapSubmitError(sessionID, err)
		}

		orderID = conf.OrderID
		// The backend total is authoritative over the local one.
		total = conf.Total
	}

	summary := buildOrderSummary(orderID, sf.Store.Name, name, contact, cart.Lines, total)

	link := ""
	if sf.Store.HasWhatsapp() {
		link = whatsapp.DeepLink(sf.Store.WhatsappDigits(), summary)
	}

	if err := u.carts.Delete(ctx, sessionID); err != nil {
		// The order went through; an undeletable cart only risks a
		// duplicate on manual retry, so log and keep going.
		u.log.WithField("session", sessionID).WithError(err).Warn("could not clear cart after checkout")
	}

	u.log.WithFields(logrus.Fields{
		"session":  sessionID,
		"store":    identifier,
		"order_id": orderID,
		"total":    total,
		"mode":     string(u.mode),
	}).Info("checkout succeeded")

	return CheckoutOutput{
		OrderID:      orderID,
		Total:        total,
		TotalLabel:   money.FormatBRL(total),
		Message:      summary,
		WhatsappLink: link,
	}, nil
}

func (u *CheckoutUsecase) mapSubmitError(sessionID string, err error) error {
	var rej *repo.Rejection
	if errors.As(err, &rej) {
		u.log.WithField("session", sessionID).WithField("reason", rej.Message).Info("checkout rejected")
		return NewHTTPError(http.StatusBadGateway, rej.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		u.log.WithField("session", sessionID).Warn("checkout timed out")
		return NewHTTPError(http.StatusGatewayTimeout, "checkout timed out")
	}
	u.log.WithField("session", sessionID).WithError(err).Error("checkout network failure")
	return NewHTTPError(http.StatusBadGateway, "network error")
}

// buildOrderSummary composes the reproducible order text sent over
// WhatsApp. Format follows the storefront widget: header with order id
// (omitted when there is none), customer block, one line per cart
// entry, authoritative total, Pix closing.
func buildOrderSummary(orderID int64, storeName, customerName, customerContact string, lines []model.CartLine, total int64) string {
	var b strings.Builder

	if orderID > 0 {
		fmt.Fprintf(&b, "*NOVO PEDIDO #%d - %s*\n", orderID, storeName)
	} else {
		fmt.Fprintf(&b, "*NOVO PEDIDO - %s*\n", storeName)
	}
	fmt.Fprintf(&b, "👤 Cliente: %s\n", customerName)
	if customerContact != "" {
		fmt.Fprintf(&b, "📱 Contato: %s\n", customerContact)
	}
	b.WriteString("\n*Resumo da Compra:*\n")

	for _, l := range lines {
		fmt.Fprintf(&b, "▪ %dx %s (%s) - %s\n", l.Quantity, l.Title, l.Variant, money.FormatBRL(l.Subtotal()))
	}

	fmt.Fprintf(&b, "\n*TOTAL: %s*", money.FormatBRL(total))
	b.WriteString("\n\nAguardo confirmação e chave Pix!")

	return b.String()
}
