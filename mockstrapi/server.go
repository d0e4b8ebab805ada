// Package mockstrapi is a local stand-in for the CloudShip Strapi
// backend. It implements the four endpoints the client consumes, with
// seeded users and products, so the CLI can be developed and the flow
// tested end to end without a Strapi deployment. Purchases here are
// deliberately non-idempotent: repeating a buy-label call yields a new
// label, matching how the real backend must be treated.
package mockstrapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/models"
)

// Server holds the in-memory backend state.
type Server struct {
	jwtSecret []byte
	logger    *zap.Logger

	mu        sync.Mutex
	users     map[string]string // email -> password
	products  []models.ProductEntry
	shipments map[string]*shipmentRecord
}

type shipmentRecord struct {
	Request models.ShipmentRequest
	Rates   []models.RateOption
	Labels  []string // one entry per purchase; repeat purchases bill again
}

// New creates a Server seeded with a demo user and catalog.
func New(jwtSecret []byte, logger *zap.Logger) *Server {
	return &Server{
		jwtSecret: jwtSecret,
		logger:    logger,
		users: map[string]string{
			"demo@cloudship.test": "password123",
		},
		products:  seedProducts(),
		shipments: make(map[string]*shipmentRecord),
	}
}

// SetUser adds or replaces a login.
func (s *Server) SetUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// SetProducts replaces the seeded catalog.
func (s *Server) SetProducts(entries []models.ProductEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = entries
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
	r.Use(RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "mockstrapi"})
	})

	api := r.Group("/api")
	api.POST("/auth/local", s.login)

	authed := api.Group("")
	authed.Use(s.authRequired())
	authed.GET("/products", s.listProducts)
	authed.POST("/shipments", s.createShipment)
	authed.POST("/shipments/:id/buy-label", s.buyLabel)

	return r
}

// ---- auth ----

type loginBody struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	s.mu.Lock()
	password, ok := s.users[body.Identifier]
	s.mu.Unlock()
	if !ok || password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid identifier or password"})
		return
	}

	claims := jwt.MapClaims{
		"email": body.Identifier,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jwt":  token,
		"user": gin.H{"email": body.Identifier},
	})
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ---- catalog ----

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	entries := make([]models.ProductEntry, len(s.products))
	copy(entries, s.products)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// ---- shipments ----

func (s *Server) createShipment(c *gin.Context) {
	var req models.ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.Parcel.Length <= 0 || req.Parcel.Width <= 0 || req.Parcel.Height <= 0 || req.Parcel.Weight <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parcel dimensions"})
		return
	}

	shipmentID := "shp_" + uuid.NewString()[:8]
	rates := fabricateRates(req.Parcel)

	s.mu.Lock()
	s.shipments[shipmentID] = &shipmentRecord{Request: req, Rates: rates}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"id": shipmentID, "rates": rates})
}

type buyLabelBody struct {
	RateID string `json:"rateId" binding:"required"`
}

func (s *Server) buyLabel(c *gin.Context) {
	shipmentID := c.Param("id")

	var body buyLabelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.shipments[shipmentID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	found := false
	for _, r := range record.Rates {
		if r.ID == body.RateID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate does not belong to this shipment"})
		return
	}

	labelURL := fmt.Sprintf("https://labels.cloudship.test/%s/%s.png", shipmentID, uuid.NewString()[:8])
	record.Labels = append(record.Labels, labelURL)

	c.JSON(http.StatusOK, gin.H{
		"postage_label": gin.H{"label_url": labelURL},
	})
}

// fabricateRates derives a stable set of offers from the parcel weight
// (ounces), cheapest-last to mirror the real backend's ranking.
func fabricateRates(p models.Parcel) []models.RateOption {
	surcharge := p.Weight * 0.12
	days := func(d int) *int { return &d }
	return []models.RateOption{
		{ID: "rt_" + uuid.NewString()[:8], Carrier: "UPS", Service: "Next Day Air", Rate: fmt.Sprintf("%.2f", 38.98+surcharge), DeliveryDays: days(1)},
		{ID: "rt_" + uuid.NewString()[:8], Carrier: "UPS", Service: "2nd Day Air", Rate: fmt.Sprintf("%.2f", 28.98+surcharge), DeliveryDays: days(2)},
		{ID: "rt_" + uuid.NewString()[:8], Carrier: "USPS", Service: "Priority", Rate: fmt.Sprintf("%.2f", 12.40+surcharge), DeliveryDays: days(3)},
		{ID: "rt_" + uuid.NewString()[:8], Carrier: "UPS", Service: "Ground", Rate: fmt.Sprintf("%.2f", 8.98+surcharge), DeliveryDays: days(5)},
	}
}

func seedProducts() []models.ProductEntry {
	return []models.ProductEntry{
		{ID: 1, Product: models.Product{
			Name: "Meridian Bike Controller", Description: "Replacement controller unit",
			Serial: "SN123", Length: 8, Width: 5, Height: 3, Weight: 22,
		}},
		{ID: 2, Product: models.Product{
			Name: "Meridian Battery Pack", Description: "48V battery pack",
			Serial: "SN456", Length: 14, Width: 6, Height: 4, Weight: 112,
		}},
	}
}
