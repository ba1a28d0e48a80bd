package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DrigerKhanh/go-ecommerce-api/internal/auth"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/cart"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/item"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/order"
	"github.com/DrigerKhanh/go-ecommerce-api/internal/user"
)

//
// ===== IN-MEMORY STUBS (implement the repo interfaces) =====
//

type stubUserRepo struct {
	byName map[string]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*user.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, ok := s.byName[u.Username]; ok {
		return user.ErrAlreadyExist
	}
	cp := *u
	s.byName[u.Username] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range s.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type stubItemRepo struct {
	byID map[string]*item.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{byID: make(map[string]*item.Item)}
}

func (s *stubItemRepo) add(it item.Item) {
	cp := it
	s.byID[it.ID] = &cp
}

func (s *stubItemRepo) List(ctx context.Context) ([]item.Item, error) {
	out := make([]item.Item, 0, len(s.byID))
	for _, it := range s.byID {
		out = append(out, *it)
	}
	return out, nil
}

func (s *stubItemRepo) GetByID(ctx context.Context, id string) (*item.Item, error) {
	it, ok := s.byID[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *stubItemRepo) SearchByName(ctx context.Context, name string) ([]item.Item, error) {
	out := make([]item.Item, 0)
	for _, it := range s.byID {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(name)) {
			out = append(out, *it)
		}
	}
	return out, nil
}

type cartState struct {
	id      string
	userID  string
	entries []string // item ids, insertion order
	total   decimal.Decimal
}

type stubCartRepo struct {
	items  *stubItemRepo
	byUser map[string]*cartState
}

func newStubCartRepo(items *stubItemRepo) *stubCartRepo {
	return &stubCartRepo{items: items, byUser: make(map[string]*cartState)}
}

func (s *stubCartRepo) CreateEmpty(ctx context.Context, userID string) (string, error) {
	cs := &cartState{id: uuid.NewString(), userID: userID, total: decimal.Zero}
	s.byUser[userID] = cs
	return cs.id, nil
}

func (s *stubCartRepo) GetByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	cs, ok := s.byUser[userID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	c := &cart.Cart{ID: cs.id, UserID: cs.userID, Items: make([]item.Item, 0, len(cs.entries)), Total: cs.total}
	for _, itemID := range cs.entries {
		it, err := s.items.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, *it)
	}
	return c, nil
}

func (s *stubCartRepo) AddEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error {
	cs := s.byID(cartID)
	if cs == nil {
		return cart.ErrNotFound
	}
	for i := 0; i < n; i++ {
		cs.entries = append(cs.entries, itemID)
	}
	cs.total = total
	return nil
}

func (s *stubCartRepo) RemoveEntries(ctx context.Context, cartID, itemID string, n int, total decimal.Decimal) error {
	cs := s.byID(cartID)
	if cs == nil {
		return cart.ErrNotFound
	}
	removed := 0
	kept := cs.entries[:0]
	for _, id := range cs.entries {
		if id == itemID && removed < n {
			removed++
			continue
		}
		kept = append(kept, id)
	}
	cs.entries = kept
	cs.total = total
	return nil
}

func (s *stubCartRepo) byID(cartID string) *cartState {
	for _, cs := range s.byUser {
		if cs.id == cartID {
			return cs
		}
	}
	return nil
}

type stubOrderRepo struct {
	orders []order.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, o *order.Order) error {
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	s.orders = append(s.orders, cp)
	return nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	out := make([]order.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- { // newest first
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

//
// ===== TEST ROUTER over the real services =====
//

type env struct {
	users  *stubUserRepo
	items  *stubItemRepo
	carts  *stubCartRepo
	orders *stubOrderRepo
	tokens *auth.TokenIssuer
}

func newTestRouter() (*gin.Engine, *env) {
	gin.SetMode(gin.TestMode)

	e := &env{
		users:  newStubUserRepo(),
		tokens: auth.NewTokenIssuer("test-secret", time.Hour),
	}
	e.items = newStubItemRepo()
	e.carts = newStubCartRepo(e.items)
	e.orders = &stubOrderRepo{}

	r := newRouter(deps{
		users:  user.NewService(e.users, e.carts),
		items:  e.items,
		carts:  cart.NewService(e.users, e.items, e.carts),
		orders: order.NewService(e.users, e.carts, e.orders),
		login:  auth.NewService(e.users, e.tokens),
		verify: e.tokens,
	})
	return r, e
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, username, password string) user.User {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/user/create", "", CreateUserRequest{
		Username: username, Password: password, ConfirmPassword: password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status=%d body=%s", username, w.Code, w.Body.String())
	}
	var u user.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return u
}

func mustToken(t *testing.T, e *env, username string) string {
	t.Helper()
	tok, err := e.tokens.Issue(username)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func seedWidgets(e *env) (roundID, squareID string) {
	roundID, squareID = "item-round", "item-square"
	e.items.add(item.Item{ID: roundID, Name: "Round Widget", Price: decimal.RequireFromString("2.99"), Description: "A widget that is round"})
	e.items.add(item.Item{ID: squareID, Name: "Square Widget", Price: decimal.RequireFromString("1.01"), Description: "A widget that is square"})
	return roundID, squareID
}

//
// ===== TESTS =====
//

func TestCreateUser_HappyPath(t *testing.T) {
	r, e := newTestRouter()

	u := registerUser(t, r, "alice", "secret12")

	if u.Username != "alice" {
		t.Fatalf("username=%q", u.Username)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret12" {
		t.Fatalf("stored credential must be a hash, got %q", u.PasswordHash)
	}
	if !user.CheckPassword(u.PasswordHash, "secret12") {
		t.Fatalf("hash does not verify against the plaintext")
	}
	if _, ok := e.carts.byUser[u.ID]; !ok {
		t.Fatalf("no cart created for new user")
	}
}

func TestCreateUser_PasswordPolicy(t *testing.T) {
	r, e := newTestRouter()

	cases := []struct {
		name     string
		password string
		confirm  string
	}{
		{"too_short", "short", "short"},
		{"six_chars", "sixsix", "sixsix"},
		{"mismatch", "secret12", "secret13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/user/create", "", CreateUserRequest{
				Username: "bob", Password: tc.password, ConfirmPassword: tc.confirm,
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
		})
	}
	if len(e.users.byName) != 0 {
		t.Fatalf("rejected registration must not persist a user")
	}
	if len(e.carts.byUser) != 0 {
		t.Fatalf("rejected registration must not persist a cart")
	}
}

func TestCreateUser_SevenCharsIsAccepted(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/user/create", "", CreateUserRequest{
		Username: "carol", Password: "exactly", ConfirmPassword: "exactly",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("7-char password should pass: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateUser_BadJSON(t *testing.T) {
	r, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/user/create", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter()
	registerUser(t, r, "alice", "secret12")

	// wrong password
	w := doJSON(t, r, http.MethodPost, "/login", "", LoginRequest{Username: "alice", Password: "wrongpass"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status=%d", w.Code)
	}

	// unknown user looks identical
	w = doJSON(t, r, http.MethodPost, "/login", "", LoginRequest{Username: "nobody", Password: "secret12"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status=%d", w.Code)
	}

	// success
	w = doJSON(t, r, http.MethodPost, "/login", "", LoginRequest{Username: "alice", Password: "secret12"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || got.Token == "" {
		t.Fatalf("no token in response: %s", w.Body.String())
	}
	if h := w.Header().Get("Authorization"); !strings.HasPrefix(h, "Bearer ") {
		t.Fatalf("Authorization header not set: %q", h)
	}
}

func TestAuthGuard(t *testing.T) {
	r, e := newTestRouter()
	registerUser(t, r, "alice", "secret12")

	// no token
	w := doJSON(t, r, http.MethodGet, "/items", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status=%d", w.Code)
	}

	// garbage token
	w = doJSON(t, r, http.MethodGet, "/items", "not.a.jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status=%d", w.Code)
	}

	// valid token
	w = doJSON(t, r, http.MethodGet, "/items", mustToken(t, e, "alice"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGetUser(t *testing.T) {
	r, e := newTestRouter()
	u := registerUser(t, r, "alice", "secret12")
	token := mustToken(t, e, "alice")

	w := doJSON(t, r, http.MethodGet, "/user/id/"+u.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by id: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/user/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by username: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/user/id/"+uuid.NewString(), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/user/nobody", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown username: status=%d", w.Code)
	}
}

func TestItems(t *testing.T) {
	r, e := newTestRouter()
	registerUser(t, r, "alice", "secret12")
	roundID, _ := seedWidgets(e)
	token := mustToken(t, e, "alice")

	w := doJSON(t, r, http.MethodGet, "/items", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status=%d", w.Code)
	}
	var items []item.Item
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len=%d, want 2", len(items))
	}

	w = doJSON(t, r, http.MethodGet, "/items/"+roundID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/items/no-such-item", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown item: status=%d", w.Code)
	}

	// case-insensitive substring match
	w = doJSON(t, r, http.MethodGet, "/items/name/widget", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search: status=%d", w.Code)
	}
	items = items[:0]
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("search len=%d, want 2", len(items))
	}

	w = doJSON(t, r, http.MethodGet, "/items/name/round", token, nil)
	var onlyRound []item.Item
	_ = json.Unmarshal(w.Body.Bytes(), &onlyRound)
	if w.Code != http.StatusOK || len(onlyRound) != 1 || onlyRound[0].ID != roundID {
		t.Fatalf("search round: status=%d items=%+v", w.Code, onlyRound)
	}

	// empty result set is a 404 per the interface contract
	w = doJSON(t, r, http.MethodGet, "/items/name/gizmo", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty search: status=%d", w.Code)
	}
}

func TestCartFlow(t *testing.T) {
	r, e := newTestRouter()
	registerUser(t, r, "alice", "secret12")
	roundID, squareID := seedWidgets(e)
	token := mustToken(t, e, "alice")

	// 1 x 2.99
	w := doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("add round: status=%d body=%s", w.Code, w.Body.String())
	}
	var c cart.Cart
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(c.Items) != 1 || !c.Total.Equal(dec(t, "2.99")) {
		t.Fatalf("after add round: items=%d total=%s", len(c.Items), c.Total)
	}

	// + 2 x 1.01 = 5.01
	w = doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: squareID, Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add square: status=%d body=%s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(c.Items) != 3 || !c.Total.Equal(dec(t, "5.01")) {
		t.Fatalf("after add square: items=%d total=%s", len(c.Items), c.Total)
	}

	// remove cancels the add
	w = doJSON(t, r, http.MethodPost, "/cart/removeFromCart", token, ModifyCartRequest{Username: "alice", ItemID: squareID, Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("remove: status=%d body=%s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(c.Items) != 1 || !c.Total.Equal(dec(t, "2.99")) {
		t.Fatalf("after remove: items=%d total=%s", len(c.Items), c.Total)
	}
}

func TestCart_Errors(t *testing.T) {
	r, e := newTestRouter()
	registerUser(t, r, "alice", "secret12")
	roundID, _ := seedWidgets(e)
	token := mustToken(t, e, "alice")

	w := doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "nobody", ItemID: roundID, Quantity: 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: "no-such-item", Quantity: 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown item: status=%d", w.Code)
	}

	for _, qty := range []int{0, -3} {
		w = doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: qty})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("qty=%d add: status=%d", qty, w.Code)
		}
		w = doJSON(t, r, http.MethodPost, "/cart/removeFromCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: qty})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("qty=%d remove: status=%d", qty, w.Code)
		}
	}
}

func TestCart_RemoveMoreThanPresent(t *testing.T) {
	r, e := newTestRouter()
	registerUser(t, r, "alice", "secret12")
	roundID, _ := seedWidgets(e)
	token := mustToken(t, e, "alice")

	doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: 2})

	w := doJSON(t, r, http.MethodPost, "/cart/removeFromCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: 5})
	if w.Code != http.StatusOK {
		t.Fatalf("over-remove must not error: status=%d body=%s", w.Code, w.Body.String())
	}
	var c cart.Cart
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(c.Items) != 0 || !c.Total.IsZero() {
		t.Fatalf("cart not emptied: items=%d total=%s", len(c.Items), c.Total)
	}
}

func TestOrder_SubmitAndHistory(t *testing.T) {
	r, e := newTestRouter()
	u := registerUser(t, r, "alice", "secret12")
	roundID, squareID := seedWidgets(e)
	token := mustToken(t, e, "alice")

	doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: roundID, Quantity: 1})
	doJSON(t, r, http.MethodPost, "/cart/addToCart", token, ModifyCartRequest{Username: "alice", ItemID: squareID, Quantity: 2})

	w := doJSON(t, r, http.MethodPost, "/order/submit/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: status=%d body=%s", w.Code, w.Body.String())
	}
	var o order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if len(o.Items) != 3 || !o.Total.Equal(dec(t, "5.01")) {
		t.Fatalf("order: items=%d total=%s", len(o.Items), o.Total)
	}

	// submission is non-destructive: the cart keeps its contents
	cs := e.carts.byUser[u.ID]
	if len(cs.entries) != 3 || !cs.total.Equal(dec(t, "5.01")) {
		t.Fatalf("cart mutated by submit: entries=%d total=%s", len(cs.entries), cs.total)
	}

	// re-ordering the same cart is legal
	w = doJSON(t, r, http.MethodPost, "/order/submit/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second submit: status=%d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/order/history/alice", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: status=%d", w.Code)
	}
	var history []order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history len=%d, want 2", len(history))
	}

	w = doJSON(t, r, http.MethodPost, "/order/submit/nobody", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("submit unknown user: status=%d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/order/history/nobody", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("history unknown user: status=%d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}
