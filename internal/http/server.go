// Package http exposes the dashboard's JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"daftar/internal/cache"
	"daftar/internal/core"
	"daftar/internal/export"
	"daftar/internal/middleware/ratelimit"
	"daftar/internal/middleware/security"
	"daftar/internal/middleware/trace"
	"daftar/internal/services"
)

// Repository is the storage surface the handlers need directly.
// Document and ledger writes go through the services instead.
type Repository interface {
	CreateClient(ctx context.Context, c core.Client) (int64, error)
	ListClients(ctx context.Context) ([]core.Client, error)

	CreateProduct(ctx context.Context, p core.Product) (int64, error)
	ListProducts(ctx context.Context) ([]core.Product, error)
	GetProduct(ctx context.Context, id int64) (core.Product, error)

	CreateVendor(ctx context.Context, v core.Vendor) (int64, error)
	ListVendors(ctx context.Context) ([]core.Vendor, error)

	ListInvoices(ctx context.Context) ([]core.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (core.Invoice, []core.InvoiceLineItem, error)
	ListEstimates(ctx context.Context) ([]core.Estimate, error)

	CreatePayment(ctx context.Context, p core.Payment) error
	ListPayments(ctx context.Context) ([]core.Payment, error)
	CreateRefund(ctx context.Context, ref core.Refund) error
	ListRefunds(ctx context.Context) ([]core.Refund, error)

	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)

	CreatePurchaseOrder(ctx context.Context, po core.PurchaseOrder) error
	ListPurchaseOrders(ctx context.Context) ([]core.PurchaseOrder, error)
	CreateDeliveryNote(ctx context.Context, dn core.DeliveryNote) error
	ListDeliveryNotes(ctx context.Context) ([]core.DeliveryNote, error)
}

type Server struct {
	http.Server

	store      Repository
	books      *services.BooksService
	documents  *services.DocumentService
	reports    *services.ReportService
	statements export.StatementWriter

	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware

	// Summaries and reports are cheap to rebuild but hit on every
	// dashboard refresh, so they sit behind small TTL caches keyed by
	// window. Writes invalidate by prefix.
	summaryCache *cache.LRUCache[core.LedgerSummary]
	plCache      *cache.LRUCache[core.PLStatement]
	taxCache     *cache.LRUCache[core.TaxReport]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. The statement writer may be nil when no export destination is
// configured.
func NewServer(addr string, store Repository, books *services.BooksService, documents *services.DocumentService, reports *services.ReportService, statements export.StatementWriter) *Server {
	mux := http.NewServeMux()

	detector := security.NewDetector()
	s := &Server{
		store:      store,
		books:      books,
		documents:  documents,
		reports:    reports,
		statements: statements,

		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector: detector,
		headers:  security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),

		summaryCache: cache.NewLRUCache[core.LedgerSummary](200, 5*time.Minute),
		plCache:      cache.NewLRUCache[core.PLStatement](100, 5*time.Minute),
		taxCache:     cache.NewLRUCache[core.TaxReport](100, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.plCache)
	s.cacheManager.Register(s.taxCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /clients", s.handleListClients)
	mux.HandleFunc("POST /clients", s.handleCreateClient)
	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("POST /products", s.handleCreateProduct)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)
	mux.HandleFunc("GET /vendors", s.handleListVendors)
	mux.HandleFunc("POST /vendors", s.handleCreateVendor)

	mux.HandleFunc("GET /invoices", s.handleListInvoices)
	mux.HandleFunc("POST /invoices", s.handleCreateInvoice)
	mux.HandleFunc("GET /invoices/{id}", s.handleGetInvoice)
	mux.HandleFunc("GET /estimates", s.handleListEstimates)
	mux.HandleFunc("POST /estimates", s.handleCreateEstimate)

	mux.HandleFunc("GET /payments", s.handleListPayments)
	mux.HandleFunc("POST /payments", s.handleCreatePayment)
	mux.HandleFunc("GET /refunds", s.handleListRefunds)
	mux.HandleFunc("POST /refunds", s.handleCreateRefund)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /purchase-orders", s.handleListPurchaseOrders)
	mux.HandleFunc("POST /purchase-orders", s.handleCreatePurchaseOrder)
	mux.HandleFunc("GET /delivery-notes", s.handleListDeliveryNotes)
	mux.HandleFunc("POST /delivery-notes", s.handleCreateDeliveryNote)

	mux.HandleFunc("POST /books/{ledger}/transactions", s.handleRecordTransaction)
	mux.HandleFunc("GET /books/{ledger}/summary", s.handleLedgerSummary)

	mux.HandleFunc("GET /reports/pl", s.handlePLStatement)
	mux.HandleFunc("GET /reports/tax", s.handleTaxReport)
	mux.HandleFunc("POST /reports/pl/export", s.handleExportStatement)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.headers.Middleware(s.tracer.Middleware(s.withRateLimit(mux))),
	}

	return s
}

// withRateLimit limits write traffic per client and drops obvious
// probe requests before they reach a handler.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request blocked",
				"method", r.Method, "path", r.URL.Path)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if r.Method == http.MethodPost {
			clientIP := s.detector.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) invalidateSummaries(ledger core.LedgerKind) {
	s.summaryCache.DeletePrefix(string(ledger) + ":")
}

func (s *Server) invalidateReports() {
	s.plCache.DeletePrefix("")
	s.taxCache.DeletePrefix("")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
