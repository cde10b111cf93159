package api

import (
	"bufio"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network/httputils"
)

func TestGetAccountHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	ac := ledger.TestMakeAccount(st, common.Amount(500))
	{
		// Do a Request
		url := strings.Replace(GetAccountHandlerPattern, "{id}", ac.Address, -1)
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		require.Equal(t, ac.Address, recv["address"], "address is not same")
		require.Equal(t, ac.Staked.String(), recv["staked"])
		require.Equal(t, false, recv["is_member"])
	}

	{ // unknown address
		unknownKey := keypair.Random()
		url := strings.Replace(GetAccountHandlerPattern, "{id}", unknownKey.Address(), -1)
		req, _ := http.NewRequest("GET", ts.URL+url, nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

// Test that getting an inexisting account returns an error
func TestGetNonExistentAccountHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	p := httputils.NewErrorProblem(errors.AccountDoesNotExist, httputils.StatusCode(errors.AccountDoesNotExist))

	{
		// Do a Request
		url := strings.Replace(GetAccountHandlerPattern, "{id}", keypair.Random().Address(), -1)
		respBody := request(ts, url, false)
		reader := bufio.NewReader(respBody)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		pByte := common.MustMarshalJSON(p)
		require.Equal(t, pByte, readByte)
	}
}

func TestGetAccountsHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	numberOfAccounts := int(DefaultLimit) + 10
	accounts := map[string]*ledger.Account{}
	for i := 0; i < numberOfAccounts; i++ {
		ac := ledger.TestMakeAccount(st, common.Amount(100))
		accounts[ac.Address] = ac
	}

	{ // request with empty body
		respBody := request(ts, GetAccountsHandlerPattern, false, []byte{})
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		require.Equal(t, http.StatusBadRequest, int(recv["status"].(float64)))
	}

	{ // request with empty list
		b := common.MustMarshalJSON([]string{})
		respBody := request(ts, GetAccountsHandlerPattern, false, b)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		require.Equal(t, http.StatusBadRequest, int(recv["status"].(float64)))
		require.True(
			t,
			strings.HasSuffix(
				recv["type"].(string),
				strconv.FormatUint(uint64(errors.BadRequestParameter.Code), 10),
			),
		)
	}

	{ // request with addresses
		var expectedAddresses []string
		for address := range accounts {
			expectedAddresses = append(expectedAddresses, address)
			if len(expectedAddresses) == int(DefaultLimit) {
				break
			}
		}

		b := common.MustMarshalJSON(expectedAddresses)
		respBody := request(ts, GetAccountsHandlerPattern, false, b)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, len(expectedAddresses), len(records))
		for _, r := range records {
			o := r.(map[string]interface{})
			address := o["address"].(string)
			require.NotEmpty(t, accounts[address])
			require.Equal(t, accounts[address].Staked, common.MustAmountFromString(o["staked"].(string)))
		}
	}

	{ // request with over limit
		var expectedAddresses []string
		for address := range accounts {
			expectedAddresses = append(expectedAddresses, address)
		}

		b := common.MustMarshalJSON(expectedAddresses)
		respBody := request(ts, GetAccountsHandlerPattern, false, b)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		require.Equal(t, http.StatusBadRequest, int(recv["status"].(float64)))
		require.True(
			t,
			strings.HasSuffix(
				recv["type"].(string),
				strconv.FormatUint(uint64(errors.PageQueryLimitMaxExceed.Code), 10),
			),
		)
	}

	{ // request with unknown addresses; the unknown address will not be included in the response
		var expectedAddresses []string
		for address := range accounts {
			expectedAddresses = append(expectedAddresses, address)
			if len(expectedAddresses) == int(DefaultLimit)-2 {
				break
			}
		}

		unknownAddresses := []string{
			keypair.Random().Address(),
			keypair.Random().Address(),
		}
		expectedAddresses = append(expectedAddresses, unknownAddresses...)

		b := common.MustMarshalJSON(expectedAddresses)
		respBody := request(ts, GetAccountsHandlerPattern, false, b)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, len(expectedAddresses)-len(unknownAddresses), len(records))
		for _, r := range records {
			o := r.(map[string]interface{})
			address := o["address"].(string)
			require.NotEmpty(t, accounts[address])
		}
	}
}

func TestGetAccountsByCreatedHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	numberOfAccounts := int(DefaultLimit) + 10
	var createdOrder []string
	for i := 0; i < numberOfAccounts; i++ {
		ac := ledger.TestMakeAccount(st, common.Amount(100))
		createdOrder = append(createdOrder, ac.Address)
	}

	readPage := func(url string) (addresses []string, next string) {
		respBody := request(ts, url, false)
		defer respBody.Close()

		readByte, err := ioutil.ReadAll(bufio.NewReader(respBody))
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
		for _, r := range records {
			o := r.(map[string]interface{})
			addresses = append(addresses, o["address"].(string))
		}

		links := recv["_links"].(map[string]interface{})
		next = links["next"].(map[string]interface{})["href"].(string)
		return
	}

	// first page holds the default limit, in creation order
	firstPage, next := readPage(GetAccountsHandlerPattern)
	require.Equal(t, int(DefaultLimit), len(firstPage))
	require.Equal(t, createdOrder[:DefaultLimit], firstPage)

	// the next link walks the remainder
	secondPage, _ := readPage(next)
	require.Equal(t, numberOfAccounts-int(DefaultLimit), len(secondPage))
	require.Equal(t, createdOrder[DefaultLimit:], secondPage)

	// reverse starts from the youngest account
	reversePage, _ := readPage(GetAccountsHandlerPattern + "?reverse=true&limit=5")
	require.Equal(t, 5, len(reversePage))
	for i, address := range reversePage {
		require.Equal(t, createdOrder[len(createdOrder)-1-i], address)
	}
}

func TestGetAccountMembershipHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	_, _ = ledger.TestMakeState(st, common.Amount(1000))
	member := ledger.TestMakeMemberAccount(st, common.Amount(1500))
	staker := ledger.TestMakeAccount(st, common.Amount(700))

	readMembership := func(address string) map[string]interface{} {
		url := strings.Replace(GetAccountMembershipHandlerPattern, "{id}", address, -1)
		respBody := request(ts, url, false)
		defer respBody.Close()

		readByte, err := ioutil.ReadAll(bufio.NewReader(respBody))
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		return recv
	}

	{
		recv := readMembership(member.Address)
		require.Equal(t, true, recv["is_member"])
		require.Equal(t, true, recv["ever_joined"])
		require.Equal(t, member.Staked.String(), recv["staked"])
		require.Equal(t, common.Amount(1000).String(), recv["required"])
	}

	{ // staked but never joined
		recv := readMembership(staker.Address)
		require.Equal(t, false, recv["is_member"])
		require.Equal(t, false, recv["ever_joined"])
		require.Equal(t, staker.Staked.String(), recv["staked"])
	}

	{ // an address that never staked still resolves, with zero stake
		recv := readMembership(keypair.Random().Address())
		require.Equal(t, false, recv["is_member"])
		require.Equal(t, common.Amount(0).String(), recv["staked"])
		require.Equal(t, common.Amount(1000).String(), recv["required"])
	}
}

func TestGetAccountRequirementHandler(t *testing.T) {
	ts, st := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	_, _ = ledger.TestMakeState(st, common.Amount(1000))

	overridden := ledger.TestMakeAccount(st, common.Amount(100))
	overridden.RequiredOverride = common.Amount(250)
	require.NoError(t, overridden.Save(st))

	readRequired := func(address string) string {
		url := strings.Replace(GetAccountRequirementHandlerPattern, "{id}", address, -1)
		respBody := request(ts, url, false)
		defer respBody.Close()

		readByte, err := ioutil.ReadAll(bufio.NewReader(respBody))
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		return recv["required"].(string)
	}

	require.Equal(t, common.Amount(250).String(), readRequired(overridden.Address))

	// no override falls through to the ledger wide requirement, known
	// address or not
	require.Equal(t, common.Amount(1000).String(), readRequired(keypair.Random().Address()))
}
