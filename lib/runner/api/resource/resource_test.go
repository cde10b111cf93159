package resource

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
)

func TestResourceAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ac := ledger.TestMakeMemberAccount(st, common.Amount(500))
	ac.SequenceID = 123

	ra := NewAccount(ac)
	r := ra.Resource()
	j, _ := json.MarshalIndent(r, "", " ")

	{
		var f interface{}
		common.MustUnmarshalJSON(j, &f)
		m := f.(map[string]interface{})
		require.Equal(t, ac.Address, m["address"])
		require.Equal(t, ac.SequenceID, uint64(m["sequence_id"].(float64)))
		require.Equal(t, ac.Staked.String(), m["staked"])
		require.Equal(t, true, m["is_member"])
		require.Equal(t, true, m["ever_joined"])

		l := m["_links"].(map[string]interface{})
		require.Equal(t, strings.Replace(URLAccounts, "{id}", ac.Address, -1), l["self"].(map[string]interface{})["href"])
	}
}

func TestResourceReceipt(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, ev := operation.TestMakeEnvelope([]byte("stakegate-unittest"), operation.TestMakeStake(100))
	rc := ledger.NewReceiptFromOperation(ev.B.Operations[0], ev)
	require.NoError(t, rc.Save(st))

	rr := NewReceipt(&rc)
	r := rr.Resource()
	j, _ := json.MarshalIndent(r, "", " ")

	{
		var f interface{}
		common.MustUnmarshalJSON(j, &f)
		m := f.(map[string]interface{})
		require.Equal(t, rc.Hash, m["hash"])
		require.Equal(t, rc.EnvelopeHash, m["envelope_hash"])
		require.Equal(t, rc.Source, m["source"])
		require.Equal(t, string(rc.Type), m["type"])
		require.Equal(t, rc.Amount.String(), m["amount"])

		l := m["_links"].(map[string]interface{})
		require.Equal(t, strings.Replace(URLReceiptByHash, "{id}", rc.Hash, -1), l["self"].(map[string]interface{})["href"])
		require.Equal(t, strings.Replace(URLAccounts, "{id}", rc.Source, -1), l["source"].(map[string]interface{})["href"])
	}
}

func TestResourceRegistry(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	adminKP, s := ledger.TestMakeState(st, common.Amount(1000))

	rg := NewRegistry(s)
	r := rg.Resource()
	j, _ := json.MarshalIndent(r, "", " ")

	{
		var f interface{}
		common.MustUnmarshalJSON(j, &f)
		m := f.(map[string]interface{})
		require.Equal(t, adminKP.Address(), m["administrator"])
		require.Equal(t, common.Amount(1000).String(), m["global_requirement"])

		l := m["_links"].(map[string]interface{})
		require.Equal(t, URLRegistry, l["self"].(map[string]interface{})["href"])
	}
}

func TestResourceList(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, ev := operation.TestMakeEnvelope(
		[]byte("stakegate-unittest"),
		operation.TestMakeStake(100),
		operation.TestMakeJoin(),
	)

	var rl []Resource
	for i := range ev.B.Operations {
		rc := ledger.NewReceiptFromOperation(ev.B.Operations[i], ev)
		require.NoError(t, rc.Save(st))
		rl = append(rl, NewReceipt(&rc))
	}

	selfURL := "/receipts/"
	arl := NewResourceList(rl, selfURL, selfURL, selfURL)
	r := arl.Resource()
	j, _ := json.MarshalIndent(r, "", " ")

	{
		var f interface{}
		common.MustUnmarshalJSON(j, &f)
		m := f.(map[string]interface{})

		l := m["_links"].(map[string]interface{})
		require.Equal(t, selfURL, l["self"].(map[string]interface{})["href"])

		records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
		require.Equal(t, len(ev.B.Operations), len(records))
		for _, v := range records {
			record := v.(map[string]interface{})
			id := record["hash"].(string)
			rc, err := ledger.GetReceipt(st, id)
			require.NoError(t, err)
			require.Equal(t, rc.Hash, record["hash"])
			require.Equal(t, rc.Source, record["source"])
			require.Equal(t, string(rc.Type), record["type"])
			l := record["_links"].(map[string]interface{})
			require.Equal(t, strings.Replace(URLReceiptByHash, "{id}", rc.Hash, -1), l["self"].(map[string]interface{})["href"])
		}
	}
}
