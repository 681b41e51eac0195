package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myshop-backend/controllers"
	"myshop-backend/models"
	"myshop-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

type testAPI struct {
	router *gin.Engine
	db     *mongo.Database
}

func setupTestAPI(t *testing.T) (*testAPI, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Skipping: failed to start mongo container (is Docker running?): %v", err)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mongoC.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("Failed to connect to mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("Failed to ping mongo: %v", err)
	}

	db := client.Database("myshop_test")
	ctrl := &controllers.Controller{DB: db, PasetoSecretKey: testSecretKey}
	gin.SetMode(gin.TestMode)
	router := routes.Setup(ctrl, "test")

	cleanup := func() {
		client.Disconnect(ctx)
		mongoC.Terminate(ctx)
	}
	return &testAPI{router: router, db: db}, cleanup
}

func (api *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

// seedAdmin inserts an admin user directly and logs in through the API.
func (api *testAPI) seedAdmin(t *testing.T) string {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	now := time.Now()
	_, err := api.db.Collection("users").InsertOne(context.Background(), models.User{
		Name: "Admin User", Email: "admin@example.com", Password: string(hash),
		IsAdmin: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}
	return api.login(t, "admin@example.com", "123456")
}

func (api *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	w := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("Login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	return resp.Token
}

func (api *testAPI) register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeBody(t, w, &resp)
	return resp.User.ID.Hex(), resp.Token
}

func (api *testAPI) count(t *testing.T, collection string) int64 {
	t.Helper()
	n, err := api.db.Collection(collection).CountDocuments(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	return n
}

func TestAPI(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	adminToken := api.seedAdmin(t)
	userID, userToken := api.register(t, "John Doe", "john@example.com")

	t.Run("RegisterDuplicateEmailConflicts", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name": "Clone", "email": "john@example.com", "password": "password123",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "john@example.com", "password": "wrong!",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("ProfileStripsPassword", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/auth/profile", userToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		decodeBody(t, w, &body)
		if pw, ok := body["password"]; ok && pw != "" {
			t.Errorf("password leaked in profile: %v", pw)
		}
	})

	var productID string
	t.Run("ProductCreateRequiresAdmin", func(t *testing.T) {
		payload := gin.H{"name": "Keyboard", "price": 49.99, "countInStock": 5, "category": "Electronics"}

		if w := api.do(t, http.MethodPost, "/api/products", "", payload); w.Code != http.StatusUnauthorized {
			t.Errorf("anonymous create status = %d, want 401", w.Code)
		}
		if w := api.do(t, http.MethodPost, "/api/products", userToken, payload); w.Code != http.StatusForbidden {
			t.Errorf("non-admin create status = %d, want 403", w.Code)
		}
		if n := api.count(t, "products"); n != 0 {
			t.Errorf("rejected creates must not write, have %d products", n)
		}

		w := api.do(t, http.MethodPost, "/api/products", adminToken, payload)
		if w.Code != http.StatusCreated {
			t.Fatalf("admin create status = %d: %s", w.Code, w.Body.String())
		}
		var product models.Product
		decodeBody(t, w, &product)
		productID = product.ID.Hex()
		if product.Image == "" {
			t.Error("create should substitute the default image")
		}
	})

	t.Run("ProductPartialUpdate", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/products/"+productID, adminToken, gin.H{"price": 39.99})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var product models.Product
		decodeBody(t, w, &product)
		if product.Price != 39.99 {
			t.Errorf("price = %v, want 39.99", product.Price)
		}
		if product.Name != "Keyboard" || product.CountInStock != 5 {
			t.Errorf("omitted fields changed: %+v", product)
		}
	})

	t.Run("ProductDeleteMissing", func(t *testing.T) {
		before := api.count(t, "products")
		w := api.do(t, http.MethodDelete, "/api/products/64a000000000000000000000", adminToken, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
		if after := api.count(t, "products"); after != before {
			t.Errorf("collection changed on failed delete: %d -> %d", before, after)
		}
	})

	t.Run("CategoryDuplicateConflicts", func(t *testing.T) {
		payload := gin.H{"name": "Electronics"}
		if w := api.do(t, http.MethodPost, "/api/categories", adminToken, payload); w.Code != http.StatusCreated {
			t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
		}
		if w := api.do(t, http.MethodPost, "/api/categories", adminToken, payload); w.Code != http.StatusConflict {
			t.Errorf("duplicate status = %d, want 409", w.Code)
		}
		if n := api.count(t, "categories"); n != 1 {
			t.Errorf("have %d category documents, want 1", n)
		}
	})

	t.Run("UserPartialUpdatePreservesFields", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/users/"+userID, adminToken, gin.H{"name": "Johnny"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			IsAdmin bool   `json:"isAdmin"`
		}
		decodeBody(t, w, &body)
		if body.Name != "Johnny" {
			t.Errorf("name = %q, want Johnny", body.Name)
		}
		if body.Email != "john@example.com" || body.IsAdmin {
			t.Errorf("omitted fields changed: %+v", body)
		}
	})

	t.Run("UserListRedactsPasswords", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/users", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var users []map[string]interface{}
		decodeBody(t, w, &users)
		if len(users) == 0 {
			t.Fatal("expected users in list")
		}
		for _, u := range users {
			if pw, ok := u["password"]; ok && pw != "" {
				t.Errorf("password hash leaked for %v", u["email"])
			}
		}
	})

	t.Run("LastAdminCannotBeDeleted", func(t *testing.T) {
		var admin models.User
		err := api.db.Collection("users").FindOne(context.Background(), bson.M{"isAdmin": true}).Decode(&admin)
		if err != nil {
			t.Fatalf("admin lookup failed: %v", err)
		}
		w := api.do(t, http.MethodDelete, "/api/users/"+admin.ID.Hex(), adminToken, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if n, _ := api.db.Collection("users").CountDocuments(context.Background(), bson.M{"isAdmin": true}); n != 1 {
			t.Errorf("admin count = %d, want 1", n)
		}
	})

	var orderID string
	t.Run("OrderCreateRecomputesTotals", func(t *testing.T) {
		items := []gin.H{{"product": productID, "name": "Keyboard", "qty": 2, "price": 10.0, "image": "/images/sample.jpg"}}
		address := gin.H{"address": "1 Main St", "city": "Springfield", "postalCode": "12345", "country": "US"}

		bogus := gin.H{
			"orderItems": items, "shippingAddress": address, "paymentMethod": "COD",
			"itemsPrice": 20.0, "shippingPrice": 0.0, "taxPrice": 0.0, "totalPrice": 20.0,
		}
		if w := api.do(t, http.MethodPost, "/api/orders", userToken, bogus); w.Code != http.StatusBadRequest {
			t.Errorf("tampered totals status = %d, want 400", w.Code)
		}

		valid := gin.H{
			"orderItems": items, "shippingAddress": address, "paymentMethod": "COD",
			"itemsPrice": 20.0, "shippingPrice": 10.0, "taxPrice": 3.0, "totalPrice": 33.0,
		}
		w := api.do(t, http.MethodPost, "/api/orders", userToken, valid)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var order models.Order
		decodeBody(t, w, &order)
		orderID = order.ID.Hex()
		if order.TotalPrice != 33.0 {
			t.Errorf("total = %v, want 33.0", order.TotalPrice)
		}
	})

	t.Run("OrderVisibility", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/orders/myorders", userToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("myorders status = %d: %s", w.Code, w.Body.String())
		}
		var mine []models.Order
		decodeBody(t, w, &mine)
		if len(mine) != 1 {
			t.Errorf("myorders returned %d orders, want 1", len(mine))
		}

		_, strangerToken := api.register(t, "Jane Doe", "jane@example.com")
		if w := api.do(t, http.MethodGet, "/api/orders/"+orderID, strangerToken, nil); w.Code != http.StatusNotFound {
			t.Errorf("stranger order lookup status = %d, want 404", w.Code)
		}
		if w := api.do(t, http.MethodGet, "/api/orders/"+orderID, adminToken, nil); w.Code != http.StatusOK {
			t.Errorf("admin order lookup status = %d, want 200", w.Code)
		}
		if w := api.do(t, http.MethodGet, "/api/orders", userToken, nil); w.Code != http.StatusForbidden {
			t.Errorf("non-admin order list status = %d, want 403", w.Code)
		}
	})

	t.Run("SettingsLazyDefaults", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/settings", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var settings models.Settings
		decodeBody(t, w, &settings)
		if settings.SiteName != "My E-Commerce" || settings.Currency != "USD" {
			t.Errorf("unexpected defaults: %+v", settings)
		}
		if n := api.count(t, "settings"); n != 1 {
			t.Errorf("settings documents = %d, want exactly 1", n)
		}
	})

	t.Run("SettingsUpdateMerges", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/settings", adminToken, gin.H{"siteName": "TechShop"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var settings models.Settings
		decodeBody(t, w, &settings)
		if settings.SiteName != "TechShop" {
			t.Errorf("siteName = %q, want TechShop", settings.SiteName)
		}
		if settings.Currency != "USD" {
			t.Errorf("currency changed on partial update: %q", settings.Currency)
		}
		if n := api.count(t, "settings"); n != 1 {
			t.Errorf("settings documents = %d, want exactly 1", n)
		}
	})

	t.Run("DashboardCounts", func(t *testing.T) {
		if w := api.do(t, http.MethodGet, "/api/dashboard", userToken, nil); w.Code != http.StatusForbidden {
			t.Errorf("non-admin dashboard status = %d, want 403", w.Code)
		}

		w := api.do(t, http.MethodGet, "/api/dashboard", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			ProductsCount int64 `json:"productsCount"`
			OrdersCount   int64 `json:"ordersCount"`
			UsersCount    int64 `json:"usersCount"`
		}
		decodeBody(t, w, &body)
		if body.ProductsCount != 1 || body.OrdersCount != 1 || body.UsersCount != 3 {
			t.Errorf("unexpected counts: %+v", body)
		}
	})

	t.Run("UpdateEmailConflicts", func(t *testing.T) {
		if w := api.do(t, http.MethodPut, "/api/users/"+userID, adminToken, gin.H{"email": "admin@example.com"}); w.Code != http.StatusConflict {
			t.Errorf("admin update status = %d, want 409", w.Code)
		}
		if w := api.do(t, http.MethodPut, "/api/auth/profile", userToken, gin.H{"email": "admin@example.com"}); w.Code != http.StatusConflict {
			t.Errorf("profile update status = %d, want 409", w.Code)
		}

		var user models.User
		err := api.db.Collection("users").FindOne(context.Background(), bson.M{"email": "john@example.com"}).Decode(&user)
		if err != nil {
			t.Errorf("email changed on rejected update: %v", err)
		}

		// Keeping one's own email is not a conflict.
		if w := api.do(t, http.MethodPut, "/api/auth/profile", userToken, gin.H{"email": "john@example.com"}); w.Code != http.StatusOK {
			t.Errorf("same-email update status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("ProductRejectsNegativeValues", func(t *testing.T) {
		before := api.count(t, "products")

		if w := api.do(t, http.MethodPost, "/api/products", adminToken, gin.H{
			"name": "Broken", "price": -5.0, "countInStock": 1, "category": "Electronics",
		}); w.Code != http.StatusBadRequest {
			t.Errorf("negative price create status = %d, want 400", w.Code)
		}
		if w := api.do(t, http.MethodPost, "/api/products", adminToken, gin.H{
			"name": "Broken", "price": 5.0, "countInStock": -1, "category": "Electronics",
		}); w.Code != http.StatusBadRequest {
			t.Errorf("negative stock create status = %d, want 400", w.Code)
		}
		if after := api.count(t, "products"); after != before {
			t.Errorf("rejected creates must not write: %d -> %d", before, after)
		}

		if w := api.do(t, http.MethodPut, "/api/products/"+productID, adminToken, gin.H{"price": -1.0}); w.Code != http.StatusBadRequest {
			t.Errorf("negative price update status = %d, want 400", w.Code)
		}
		if w := api.do(t, http.MethodPut, "/api/products/"+productID, adminToken, gin.H{"countInStock": -3}); w.Code != http.StatusBadRequest {
			t.Errorf("negative stock update status = %d, want 400", w.Code)
		}

		w := api.do(t, http.MethodGet, "/api/products/"+productID, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var product models.Product
		decodeBody(t, w, &product)
		if product.Price != 39.99 || product.CountInStock != 5 {
			t.Errorf("rejected updates changed the document: %+v", product)
		}
	})

	t.Run("OrderRejectsInvalidItems", func(t *testing.T) {
		before := api.count(t, "orders")
		address := gin.H{"address": "1 Main St", "city": "Springfield", "postalCode": "12345", "country": "US"}

		zeroQty := gin.H{
			"orderItems":      []gin.H{{"product": productID, "name": "Keyboard", "qty": 0, "price": 10.0}},
			"shippingAddress": address, "paymentMethod": "COD",
			"itemsPrice": 0.0, "shippingPrice": 10.0, "taxPrice": 0.0, "totalPrice": 10.0,
		}
		if w := api.do(t, http.MethodPost, "/api/orders", userToken, zeroQty); w.Code != http.StatusBadRequest {
			t.Errorf("zero qty status = %d, want 400", w.Code)
		}

		negativePrice := gin.H{
			"orderItems":      []gin.H{{"product": productID, "name": "Keyboard", "qty": 1, "price": -10.0}},
			"shippingAddress": address, "paymentMethod": "COD",
			"itemsPrice": -10.0, "shippingPrice": 10.0, "taxPrice": -1.5, "totalPrice": -1.5,
		}
		if w := api.do(t, http.MethodPost, "/api/orders", userToken, negativePrice); w.Code != http.StatusBadRequest {
			t.Errorf("negative price status = %d, want 400", w.Code)
		}

		if after := api.count(t, "orders"); after != before {
			t.Errorf("rejected orders must not write: %d -> %d", before, after)
		}
	})
}
