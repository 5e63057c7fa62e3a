package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinworld/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestClientLoginSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-123",
			"data": map[string]any{
				"EmpCode":      "EMP042",
				"EmpName":      "Asha Verma",
				"RoleName":     "Operator",
				"LocationId":   3,
				"LocationName": "Pune Hub",
			},
		})
	})
	defer srv.Close()

	result, err := c.Login(context.Background(), "EMP042", "secret")
	require.NoError(t, err)
	assert.Equal(t, "/auth/login.php", gotPath)
	assert.Equal(t, "EMP042", gotBody["identifier"])
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "Asha Verma", result.User.EmpName)
	assert.Equal(t, int64(3), result.User.LocationID)
}

func TestClientLoginBackendRejection(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	})
	defer srv.Close()

	_, err := c.Login(context.Background(), "EMP042", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClientLoginRejectionWithoutMessageUsesFallback(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	})
	defer srv.Close()

	_, err := c.Login(context.Background(), "EMP042", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Login failed. Please try again.", apiErr.Message)
}

func TestClientGetDocketsQuery(t *testing.T) {
	var gotQuery map[string][]string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"count":   1,
			"data": []map[string]any{
				{"Id": 1, "DocketNo": "VW-001", "Status": "active"},
			},
		})
	})
	defer srv.Close()

	dockets, err := c.GetDockets(context.Background(), 3, "VW-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, gotQuery["locationId"])
	assert.Equal(t, []string{"VW-001"}, gotQuery["search"])
	require.Len(t, dockets, 1)
	assert.Equal(t, "VW-001", dockets[0].DocketNo)
}

func TestClientGetDocketsEmptyData(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "count": 0})
	})
	defer srv.Close()

	dockets, err := c.GetDockets(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Empty(t, dockets)
}

func TestClientNonOKStatusIsTransportError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := c.GetDockets(context.Background(), 3, "")
	require.Error(t, err)
	// Transport failures are ordinary errors, not backend messages.
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClientCreateDocket(t *testing.T) {
	var got models.CreatePayload
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/docket/add_docket.php", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer srv.Close()

	err := c.CreateDocket(context.Background(), &models.CreatePayload{
		InvoiceRequired: models.InvoiceNo,
		LocationID:      3,
		CreatedBy:       "EMP042",
		Shipments: []models.ShipmentPayload{
			{Length: 10, Width: 10, Height: 10, ActualWeight: 12.5, NoOfBox: 2, BoxType: "Small"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "No", got.InvoiceRequired)
	assert.Equal(t, "EMP042", got.CreatedBy)
	require.Len(t, got.Shipments, 1)
}

func TestClientUpdateDocketMultipart(t *testing.T) {
	var gotData models.UpdatePayload
	var gotImage []byte
	var gotFilename string

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/docket/update_docket.php", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &gotData))

		file, fh, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = fh.Filename
		gotImage, err = io.ReadAll(file)
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer srv.Close()

	err := c.UpdateDocket(context.Background(),
		&models.UpdatePayload{DocketNo: "VW-001", InvoiceRequired: 1, InvoiceValue: 12500},
		&ImageUpload{Filename: "pod.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}},
	)
	require.NoError(t, err)
	assert.Equal(t, "VW-001", gotData.DocketNo)
	assert.Equal(t, 1, gotData.InvoiceRequired)
	assert.Equal(t, "pod.jpg", gotFilename)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, gotImage)
}

func TestClientUpdateDocketWithoutImage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.Error(t, err)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer srv.Close()

	err := c.UpdateDocket(context.Background(), &models.UpdatePayload{DocketNo: "VW-001"}, nil)
	require.NoError(t, err)
}

func TestClientGetConsignorsFiltersInactive(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/docket/get_consignor.php", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 1, "name": "Acme Traders", "status": 1},
				{"id": 2, "name": "Closed Shop", "status": 0},
				{"id": 3, "name": "Gamma Goods", "status": 1},
			},
		})
	})
	defer srv.Close()

	consignors, err := c.GetConsignors(context.Background())
	require.NoError(t, err)
	require.Len(t, consignors, 2)
	assert.Equal(t, "Acme Traders", consignors[0].Name)
	assert.Equal(t, "Gamma Goods", consignors[1].Name)
}
