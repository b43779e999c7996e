package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/itemboard/backend/internal/auth"
	"github.com/itemboard/backend/internal/middleware"
	"github.com/itemboard/backend/internal/models"
	"github.com/itemboard/backend/internal/store"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id, fullName, email string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.FullName = fullName
	u.Email = email
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeInfoStore struct {
	byUser map[string]*models.UserInformation
}

func (f *fakeInfoStore) GetByUser(_ context.Context, userID string) (*models.UserInformation, error) {
	info, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *info
	return &cp, nil
}

func (f *fakeInfoStore) Upsert(_ context.Context, userID string, req models.UserInformationRequest) (*models.UserInformation, error) {
	info, ok := f.byUser[userID]
	if !ok {
		info = &models.UserInformation{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		f.byUser[userID] = info
	}
	info.CNIC = req.CNIC
	info.MobileNumber = req.MobileNumber
	info.Whatsapp = req.Whatsapp
	info.FacebookURL = req.FacebookURL
	info.InstagramURL = req.InstagramURL
	info.About = req.About
	info.UpdatedAt = time.Now().UTC()
	cp := *info
	return &cp, nil
}

func fixture(t *testing.T) (*Handler, *fakeUserStore, *fakeInfoStore, string) {
	t.Helper()
	hash, err := auth.HashPassword("oldpass")
	require.NoError(t, err)

	id := primitive.NewObjectID()
	us := &fakeUserStore{users: map[string]*models.User{
		id.Hex(): {ID: id, FullName: "Ali Khan", Email: "ali@x.com", PasswordHash: hash},
	}}
	is := &fakeInfoStore{byUser: map[string]*models.UserInformation{}}
	return NewHandler(us, is), us, is, id.Hex()
}

func patch(h http.HandlerFunc, userID, path, body string) *httptest.ResponseRecorder {
	return doAs(h, http.MethodPatch, userID, path, body)
}

func doAs(h http.HandlerFunc, method, userID, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	ctx := middleware.WithIdentity(req.Context(), middleware.Identity{UserID: userID, Email: "ali@x.com"})
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func TestUpdateProfile(t *testing.T) {
	h, us, _, uid := fixture(t)

	rec := patch(h.UpdateProfile, uid, "/users/profile", `{"fullName":"Ali K","email":"NEW@X.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Email is normalized on the way in.
	assert.Equal(t, "new@x.com", us.users[uid].Email)
	assert.Equal(t, "Ali K", us.users[uid].FullName)

	var resp struct {
		User map[string]string `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new@x.com", resp.User["email"])
}

func TestUpdateProfile_Validation(t *testing.T) {
	h, _, _, uid := fixture(t)

	for _, body := range []string{
		`{"fullName":"","email":"a@x.com"}`,
		`{"fullName":"A","email":""}`,
		`{"fullName":"A","email":"   "}`,
	} {
		rec := patch(h.UpdateProfile, uid, "/users/profile", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	h, _, _, _ := fixture(t)

	rec := patch(h.UpdateProfile, primitive.NewObjectID().Hex(), "/users/profile", `{"fullName":"A","email":"a@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePassword_RoundTrip(t *testing.T) {
	h, us, _, uid := fixture(t)

	rec := patch(h.ChangePassword, uid, "/users/password", `{"current":"oldpass","newPass":"newpass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password no longer matches, the new one does.
	assert.False(t, auth.CheckPassword(us.users[uid].PasswordHash, "oldpass"))
	assert.True(t, auth.CheckPassword(us.users[uid].PasswordHash, "newpass"))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	h, us, _, uid := fixture(t)
	before := us.users[uid].PasswordHash

	rec := patch(h.ChangePassword, uid, "/users/password", `{"current":"nope","newPass":"newpass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before, us.users[uid].PasswordHash, "digest must be untouched")
}

func TestChangePassword_Validation(t *testing.T) {
	h, _, _, uid := fixture(t)

	rec := patch(h.ChangePassword, uid, "/users/password", `{"current":"","newPass":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = patch(h.ChangePassword, uid, "/users/password", `{"current":"x","newPass":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInformation_GetOrCreate(t *testing.T) {
	h, _, is, uid := fixture(t)

	// Before any write the record is null, not an error.
	rec := doAs(h.GetInformation, http.MethodGet, uid, "/users/information", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userInfo":null}`, rec.Body.String())

	// First PATCH creates the extension record.
	rec = patch(h.UpdateInformation, uid, "/users/information", `{"about":"hello","facebookUrl":"https://fb.com/ali","mobileNumber":3001234567}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, is.byUser, 1)

	var resp struct {
		UserInfo models.UserInformation `json:"userInfo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uid, resp.UserInfo.UserID)
	assert.Equal(t, "hello", resp.UserInfo.About)
	assert.EqualValues(t, 3001234567, resp.UserInfo.MobileNumber)

	// A later PATCH updates the same record in place.
	rec = patch(h.UpdateInformation, uid, "/users/information", `{"about":"updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, is.byUser, 1)
	assert.Equal(t, "updated", is.byUser[uid].About)

	rec = doAs(h.GetInformation, http.MethodGet, uid, "/users/information", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "updated", resp.UserInfo.About)
}
