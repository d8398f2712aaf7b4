package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"watch-store/internal/data/entity"
	"watch-store/internal/data/repository"
	"watch-store/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:            "test-secret",
			AccessExpiryMins:  30,
			RefreshExpiryDays: 7,
		},
		OTP: utils.OTPConfig{
			ExpiryMinutes:  10,
			Length:         6,
			MaxAttempts:    3,
			ResendCooldown: 60,
		},
		Checkout: utils.CheckoutConfig{
			TaxRate:           0.12,
			ShippingFee:       10,
			FreeShipThreshold: 1000,
		},
	}
}

// unreachableRedis fails every command immediately; the cooldown check
// treats that as a pass.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// In-memory repositories backing the service tests.

func newFakeRepo() *repository.Repository {
	carts := &fakeCartRepo{items: map[uuid.UUID]*entity.CartItem{}}
	products := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
	return &repository.Repository{
		User:         &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		Profile:      &fakeProfileRepo{sellers: map[uuid.UUID]*entity.SellerProfile{}, customers: map[uuid.UUID]*entity.CustomerProfile{}},
		RefreshToken: &fakeRefreshTokenRepo{tokens: map[string]*entity.RefreshToken{}},
		Category:     &fakeCategoryRepo{bySlug: map[string]*entity.Category{}},
		Product:      products,
		Cart:         carts,
		Wishlist:     &fakeWishlistRepo{items: map[uuid.UUID]*entity.WishlistItem{}},
		Order: &fakeOrderRepo{
			orders:   map[uuid.UUID]*entity.Order{},
			items:    map[uuid.UUID][]*entity.OrderItem{},
			carts:    carts,
			products: products,
		},
		OTP: &fakeOTPRepo{},
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			user.EmailVerified = true
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	mu        sync.Mutex
	sellers   map[uuid.UUID]*entity.SellerProfile
	customers map[uuid.UUID]*entity.CustomerProfile
}

func (f *fakeProfileRepo) CreateSeller(_ context.Context, profile *entity.SellerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sellers[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) CreateCustomer(_ context.Context, profile *entity.CustomerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) FindSeller(_ context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sellers[userID], nil
}

func (f *fakeProfileRepo) FindCustomer(_ context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customers[userID], nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.RefreshToken
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *token
	f.tokens[token.Token] = &copied
	return nil
}

func (f *fakeRefreshTokenRepo) FindValid(_ context.Context, token string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.tokens[token]
	if !ok || rt.IsRevoked || !rt.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	copied := *rt
	return &copied, nil
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rt, ok := f.tokens[token]; ok {
		rt.IsRevoked = true
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, rt := range f.tokens {
		if rt.IsRevoked || !rt.ExpiresAt.After(time.Now()) {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	mu     sync.Mutex
	bySlug map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bySlug[category.Slug] = category
	return nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var categories []*entity.Category
	for _, category := range f.bySlug {
		categories = append(categories, category)
	}
	return categories, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bySlug[slug], nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product, ok := f.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var products []*entity.Product
	for _, product := range f.products {
		if filter.SellerID != nil && product.SellerID != *filter.SellerID {
			continue
		}
		copied := *product
		products = append(products, &copied)
	}
	return products, nil
}

func (f *fakeProductRepo) Count(_ context.Context, filter entity.ProductFilter) (int64, error) {
	products, _ := f.FindAll(context.Background(), filter, 0, 0)
	return int64(len(products)), nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.CartItem
}

func (f *fakeCartRepo) Upsert(_ context.Context, item *entity.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.CustomerID == item.CustomerID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeCartRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []*entity.CartItem
	for _, item := range f.items {
		if item.CustomerID == customerID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (f *fakeCartRepo) FindByID(_ context.Context, id, customerID uuid.UUID) (*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok && item.CustomerID == customerID {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, id, customerID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok && item.CustomerID == customerID {
		item.Quantity = quantity
	}
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id, customerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, customerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, item := range f.items {
		if item.CustomerID == customerID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeWishlistRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.WishlistItem
}

func (f *fakeWishlistRepo) Add(_ context.Context, item *entity.WishlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.CustomerID == item.CustomerID && existing.ProductID == item.ProductID {
			return nil
		}
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeWishlistRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*entity.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []*entity.WishlistItem
	for _, item := range f.items {
		if item.CustomerID == customerID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (f *fakeWishlistRepo) Delete(_ context.Context, id, customerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

// fakeOrderRepo scripts Checkout through checkoutErrs and records the order
// numbers each attempt presented. When the customer's cart fake has lines,
// Checkout snapshots prices from the product fake and clears the cart, like
// the transactional checkout does; otherwise it books a single 250 line.
type fakeOrderRepo struct {
	mu           sync.Mutex
	orders       map[uuid.UUID]*entity.Order
	items        map[uuid.UUID][]*entity.OrderItem
	carts        *fakeCartRepo
	products     *fakeProductRepo
	checkoutErrs []error
	seenNumbers  []string
	subtotal     float64
	stats        *entity.CustomerOrderStats
	sellerOrders map[uuid.UUID]bool
}

func (f *fakeOrderRepo) Checkout(ctx context.Context, ord *entity.Order, pricing entity.Pricing) ([]*entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seenNumbers = append(f.seenNumbers, ord.OrderNumber)
	if len(f.checkoutErrs) > 0 {
		err := f.checkoutErrs[0]
		f.checkoutErrs = f.checkoutErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	var items []*entity.OrderItem
	var subtotal float64

	lines, _ := f.carts.FindByCustomerID(ctx, ord.CustomerID)
	for _, line := range lines {
		product, _ := f.products.FindByID(ctx, line.ProductID)
		if product == nil {
			continue
		}
		items = append(items, &entity.OrderItem{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: ord.CreatedAt},
			OrderID:     ord.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
			Subtotal:    product.Price * float64(line.Quantity),
		})
		subtotal += product.Price * float64(line.Quantity)
	}

	if len(items) == 0 {
		subtotal = f.subtotal
		if subtotal == 0 {
			subtotal = 250
		}
		items = []*entity.OrderItem{{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: ord.CreatedAt},
			OrderID:     ord.ID,
			ProductID:   uuid.New(),
			ProductName: "Diver 200",
			Quantity:    1,
			Price:       subtotal,
			Subtotal:    subtotal,
		}}
	}

	ord.Subtotal = subtotal
	ord.ShippingFee, ord.TaxAmount, ord.DiscountAmount, ord.TotalAmount = pricing.Totals(subtotal)

	_ = f.carts.Clear(ctx, ord.CustomerID)

	copied := *ord
	f.orders[ord.ID] = &copied
	f.items[ord.ID] = items
	return items, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ord, ok := f.orders[id]; ok {
		copied := *ord
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []*entity.Order
	for _, ord := range f.orders {
		if ord.CustomerID != customerID {
			continue
		}
		if status != nil && ord.Status != *status {
			continue
		}
		copied := *ord
		orders = append(orders, &copied)
	}
	return orders, nil
}

func (f *fakeOrderRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID, status *entity.OrderStatus) (int64, error) {
	orders, _ := f.FindByCustomer(ctx, customerID, status, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) FindItems(_ context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) ItemCounts(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, id := range orderIDs {
		for _, item := range f.items[id] {
			counts[id] += item.Quantity
		}
	}
	return counts, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ord, ok := f.orders[id]; ok {
		ord.Status = status
	}
	return nil
}

func (f *fakeOrderRepo) CustomerStats(_ context.Context, customerID uuid.UUID) (*entity.CustomerOrderStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &entity.CustomerOrderStats{StatusCounts: map[entity.OrderStatus]int64{}}, nil
}

func (f *fakeOrderRepo) FindBySeller(_ context.Context, sellerID uuid.UUID, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []*entity.Order
	for id, ord := range f.orders {
		if !f.sellerOrders[id] {
			continue
		}
		if status != nil && ord.Status != *status {
			continue
		}
		copied := *ord
		orders = append(orders, &copied)
	}
	return orders, nil
}

func (f *fakeOrderRepo) CountBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) (int64, error) {
	orders, _ := f.FindBySeller(ctx, sellerID, status, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) FindByIDForSeller(_ context.Context, id, sellerID uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.sellerOrders[id] {
		return nil, nil
	}
	if ord, ok := f.orders[id]; ok {
		copied := *ord
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindItemsForSeller(_ context.Context, orderID, sellerID uuid.UUID) ([]*entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) SellerStats(_ context.Context, sellerID uuid.UUID) (*entity.SellerStats, error) {
	return &entity.SellerStats{}, nil
}

func (f *fakeOrderRepo) RevenueByDay(_ context.Context, sellerID uuid.UUID, days int) ([]*entity.RevenuePoint, error) {
	return nil, nil
}

func (f *fakeOrderRepo) TopProducts(_ context.Context, sellerID uuid.UUID, limit int) ([]*entity.TopProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	byProduct := map[uuid.UUID]*entity.TopProduct{}
	for id, ord := range f.orders {
		if !f.sellerOrders[id] || ord.Status != entity.OrderStatusDelivered {
			continue
		}
		for _, item := range f.items[id] {
			top, ok := byProduct[item.ProductID]
			if !ok {
				top = &entity.TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = top
			}
			top.UnitsSold += int64(item.Quantity)
			top.Revenue += item.Subtotal
		}
	}

	tops := make([]*entity.TopProduct, 0, len(byProduct))
	for _, top := range byProduct {
		tops = append(tops, top)
	}
	sort.Slice(tops, func(i, j int) bool { return tops[i].Revenue > tops[j].Revenue })
	if limit > 0 && len(tops) > limit {
		tops = tops[:limit]
	}
	return tops, nil
}

type fakeOTPRepo struct {
	mu   sync.Mutex
	otps []*entity.OTP
}

func (f *fakeOTPRepo) Replace(_ context.Context, otp *entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, existing := range f.otps {
		if existing.Email != otp.Email || existing.Purpose != otp.Purpose {
			kept = append(kept, existing)
		}
	}
	copied := *otp
	f.otps = append(kept, &copied)
	return nil
}

func (f *fakeOTPRepo) FindByEmailPurpose(_ context.Context, email string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.Email == email && otp.Purpose == purpose {
			copied := *otp
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOTPRepo) IncrementAttempts(_ context.Context, id uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.ID == id {
			otp.Attempts++
			return otp.Attempts, nil
		}
	}
	return 0, nil
}

func (f *fakeOTPRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.ID != id {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeOTPRepo) DeleteByEmailPurpose(_ context.Context, email string, purpose entity.OTPPurpose) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.Email != email || otp.Purpose != purpose {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.ExpiresAt.After(time.Now()) {
			kept = append(kept, otp)
		} else {
			n++
		}
	}
	f.otps = kept
	return n, nil
}

// fakeMailer records deliveries so tests can read issued codes back out
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) last() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}

// fakeMediaStore hands back deterministic URLs
type fakeMediaStore struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeMediaStore) Upload(filename string, content []byte) (string, string, error) {
	return "http://media.test/" + filename, filename, nil
}

func (f *fakeMediaStore) Delete(handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, handle)
	return nil
}
