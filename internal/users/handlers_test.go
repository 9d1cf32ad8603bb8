package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newHandlerApp(mock pgxmock.PgxPoolIface, remote *stubRemote) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/user"), NewService(NewStore(mock), remote),
		func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestUserHandlersGet(t *testing.T) {
	mock := newMock(t)
	app := newHandlerApp(mock, &stubRemote{})

	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(userRow("u1", false)...))

	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserHandlersUpdate(t *testing.T) {
	mock := newMock(t)
	remote := &stubRemote{}
	app := newHandlerApp(mock, remote)

	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(userRow("u1", false)...))
	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "Alex", "meters", true, 0.0, 0.0, 600.0, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, _ := json.Marshal(map[string]string{"name": "Alex"})
	req := httptest.NewRequest(http.MethodPut, "/user/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}
	if remote.pushes != 1 {
		t.Fatalf("expected a remote push")
	}
}

func TestUserHandlersBadPayload(t *testing.T) {
	mock := newMock(t)
	app := newHandlerApp(mock, &stubRemote{})

	req := httptest.NewRequest(http.MethodPut, "/user/", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
