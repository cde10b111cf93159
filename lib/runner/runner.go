//
// Struct that bridges together components of a registry node
//
// Runner bridges together the network, storage, executor and
// `LocalNode`. In this regard, it can be seen as a single node, and is
// used as such in unit tests.
//
package runner

import (
	"net/http/pprof"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/network"
	"stakegate.io/stakegate/lib/network/httpcache"
	"stakegate.io/stakegate/lib/node"
	"stakegate.io/stakegate/lib/runner/api"
	"stakegate.io/stakegate/lib/storage"
)

type Runner struct {
	localNode *node.LocalNode
	network   network.Network
	executor  *Executor
	storage   *storage.LevelDBBackend
	cache     httpcache.Wrapper

	log logging.Logger

	Conf     common.Config
	nodeInfo node.NodeInfo
}

func NewRunner(
	localNode *node.LocalNode,
	n network.Network,
	executor *Executor,
	st *storage.LevelDBBackend,
	conf common.Config,
) (nr *Runner, err error) {
	nr = &Runner{
		localNode: localNode,
		network:   n,
		executor:  executor,
		storage:   st,
		log:       log.New(logging.Ctx{"node": localNode.Alias()}),
		Conf:      conf,
	}

	{
		// a node only serves over an initialized registry
		var state *ledger.State
		if state, err = ledger.GetState(st); err != nil {
			return nil, err
		}
		nr.log.Debug("registry state found",
			"administrator", state.Administrator,
			"global-required", state.GlobalRequired,
		)

		if err = seedRegistryGauges(st, state); err != nil {
			return nil, err
		}
	}

	if nr.cache, err = newCacheClient(conf, nr.log); err != nil {
		return nil, err
	}

	nr.nodeInfo = NewNodeInfo(nr)

	return nr, nil
}

// newCacheClient builds the wrapper for the read endpoints. Without a
// configured adapter every read goes straight to storage.
func newCacheClient(conf common.Config, logger logging.Logger) (httpcache.Wrapper, error) {
	if len(conf.HTTPCacheAdapter) < 1 {
		return httpcache.NewNopClient(), nil
	}

	adapter, err := httpcache.NewAdapter(conf)
	if err != nil {
		return nil, err
	}

	return httpcache.NewClient(
		httpcache.WithAdapter(adapter),
		httpcache.WithExpire(HTTPCacheExpire),
		httpcache.WithLogger(logger),
	)
}

func (nr *Runner) Ready() {
	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	if err := nr.network.AddMiddleware(network.RouterNameAPI, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameAPI` has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameMetric, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameMetric` router has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameDebug, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameDebug` router has an error", "err", err)
		return
	}

	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	if err := nr.network.AddMiddleware(network.RouterNameAPI, network.MetricsMiddleware()); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		err := nr.network.AddMiddleware(network.RouterNameAPI, cors)
		if err != nil {
			nr.log.Error("Middleware has an error", "err", err)
			return
		}
	}

	nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)

	// api handlers
	apiHandler := api.NewNetworkHandlerAPI(
		nr.localNode,
		nr.network,
		nr.storage,
		network.UrlPathPrefixAPI,
		nr.nodeInfo,
		nr.executor,
	)

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountReceiptsHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetReceiptsByAccountHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountMembershipHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetAccountMembershipHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountRequirementHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetAccountRequirementHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetAccountHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountsHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetAccountsByCreatedHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAccountsHandlerPattern),
		apiHandler.GetAccountsHandler,
	).Methods("POST").MatcherFunc(common.PostAndJSONMatcher)
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetReceiptsHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetReceiptsHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetReceiptByHashHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetReceiptByHashHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetRegistryHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetRegistryHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostOperationsPattern),
		apiHandler.PostOperationsHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostSubscribePattern),
		apiHandler.PostSubscribeHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)

	// pprof
	if DebugPProf == true {
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/profile", pprof.Profile)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/trace", pprof.Trace)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/*", pprof.Index)
	}

	nr.network.AddHandler(api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	nr.network.Ready()
}

func (nr *Runner) Start() (err error) {
	nr.log.Debug("runner started")
	nr.Ready()

	if err = nr.network.Start(); err != nil {
		return
	}

	return
}

func (nr *Runner) Stop() {
	nr.network.Stop()
}

func (nr *Runner) Node() *node.LocalNode {
	return nr.localNode
}

func (nr *Runner) NetworkID() []byte {
	return nr.Conf.NetworkID
}

func (nr *Runner) Network() network.Network {
	return nr.network
}

func (nr *Runner) Executor() *Executor {
	return nr.executor
}

func (nr *Runner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *Runner) Log() logging.Logger {
	return nr.log
}

func (nr *Runner) NodeInfo() node.NodeInfo {
	return nr.nodeInfo
}
