package httputils

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
)

func TestProblem(t *testing.T) {

	router := mux.NewRouter()

	typedProblem := NewProblem("https://stakegate.io/problems/membership-frozen", "membership is frozen")
	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "paramaters are not enough")
	errorProblem := NewErrorProblem(errors.InvalidOperation, 500)

	router.HandleFunc("/problem_typed", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, typedProblem)
	})

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, statusProblem)
	})

	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, detailedStatusProblem)
	})

	router.HandleFunc("/problem_status_with_detail_instance", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, detailedStatusProblem.SetInstance("https://stakegate.io/problems/instance/1"))
	})

	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, errorProblem)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	// problem_typed
	{
		url := ts.URL + fmt.Sprintf("/problem_typed")
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := typedProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Empty(t, m["status"])
			require.Empty(t, m["detail"])
			require.Empty(t, m["instance"])
		}
	}

	// problem_status_default
	{
		url := ts.URL + fmt.Sprintf("/problem_status_default")
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := statusProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Empty(t, m["detail"])
			require.Empty(t, m["instance"])
		}
	}

	// problem_status_with_detail
	{
		url := ts.URL + fmt.Sprintf("/problem_status_with_detail")
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := detailedStatusProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Equal(t, p.Detail, m["detail"])
			require.Empty(t, m["instance"])
		}
	}

	// problem_status_with_detail_instance
	{
		url := ts.URL + fmt.Sprintf("/problem_status_with_detail_instance")
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := detailedStatusProblem.SetInstance("https://stakegate.io/problems/instance/1")
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Equal(t, p.Detail, m["detail"])
			require.Equal(t, p.Instance, m["instance"])
		}
	}

	// problem_with_error
	{
		url := ts.URL + fmt.Sprintf("/problem_with_error")
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := errorProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Empty(t, m["detail"])
			require.Empty(t, m["instance"])
		}
	}
}

func TestWriteJSONError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/missing_account", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.AccountDoesNotExist)
	})
	router.HandleFunc("/not_administrator", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.NotAdministrator)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, err := http.Get(ts.URL + "/missing_account")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 404, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		p := NewErrorProblem(errors.AccountDoesNotExist, 404)
		require.Equal(t, common.MustMarshalJSON(p), readByte)
	}

	{
		resp, err := http.Get(ts.URL + "/not_administrator")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 403, resp.StatusCode)
	}
}
