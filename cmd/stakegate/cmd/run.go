package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/http2"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	cmdcommon "stakegate.io/stakegate/cmd/stakegate/common"
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/metrics"
	"stakegate.io/stakegate/lib/network"
	"stakegate.io/stakegate/lib/node"
	"stakegate.io/stakegate/lib/runner"
	"stakegate.io/stakegate/lib/storage"
	"stakegate.io/stakegate/lib/transfer"
)

const defaultNetwork string = "https"
const defaultHost string = "0.0.0.0"

var (
	flagKPSecretSeed string = common.GetENVValue("SG_SECRET_SEED", "")
	flagNetworkID    string = common.GetENVValue("SG_NETWORK_ID", "")
	flagLogLevel     string = common.GetENVValue("SG_LOG_LEVEL", common.DefaultLogLevel.String())
	flagLogOutput    string = common.GetENVValue("SG_LOG_OUTPUT", "")
	flagVerbose      bool   = common.GetENVValue("SG_VERBOSE", "0") == "1"
	flagBindURL      string = common.GetENVValue(
		"SG_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, common.DefaultPort),
	)
	flagPublishURL          string = common.GetENVValue("SG_PUBLISH", "")
	flagTransferURL         string = common.GetENVValue("SG_TRANSFER", "")
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("SG_TLS_CERT", "stakegate.crt")
	flagTLSKeyFile          string = common.GetENVValue("SG_TLS_KEY", "stakegate.key")
	flagOperationsLimit     string = common.GetENVValue("SG_OPERATIONS_LIMIT", strconv.Itoa(common.DefaultOperationsLimit))
	flagHTTPCacheAdapter    string = common.GetENVValue("SG_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   string = common.GetENVValue("SG_HTTP_CACHE_POOL_SIZE", strconv.Itoa(common.HTTPCachePoolSize))
	flagHTTPCacheRedisAddrs string = common.GetENVValue("SG_HTTP_CACHE_REDIS_ADDRS", "")
	flagDebugPProf          bool   = common.GetENVValue("SG_DEBUG_PPROF", "0") == "1"
	flagNTPHost             string = common.GetENVValue("SG_NTP_HOST", "")
	flagRateLimitAPI        cmdcommon.ListFlags
)

var (
	runCmd *cobra.Command

	kp                  *keypair.Full
	bindEndpoint        *common.Endpoint
	publishEndpoint     *common.Endpoint
	transferEndpoint    *common.Endpoint
	storageConfig       *storage.Config
	operationsLimit     int
	rateLimitRuleAPI    common.RateLimitRule
	httpCachePoolSize   int
	httpCacheRedisAddrs map[string]string
	logLevel            logging.Lvl
	log                 logging.Logger
)

func init() {
	var err error
	var flagGenesis string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run stakegate node",
		Run: func(c *cobra.Command, args []string) {
			// If `--genesis` was provided, perform `stakegate genesis`
			// before starting the node. This allows one-step startup
			// from scratch, quite useful for testing.
			if len(flagGenesis) != 0 {
				var requirement string
				csv := strings.Split(flagGenesis, ",")
				if len(csv) > 2 {
					cmdcommon.PrintFlagsError(runCmd, "--genesis",
						errors.New("--genesis expects address[,requirement], but more than 2 commas detected"))
				}
				if len(csv) == 2 {
					requirement = csv[1]
				}
				flagName, err := MakeGenesisState(csv[0], requirement, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					cmdcommon.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("SG_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "performs the 'genesis' command before running node. Syntax: key[,requirement]")
	runCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of this node")
	runCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	runCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "endpoint uri to listen on")
	runCmd.Flags().StringVar(&flagPublishURL, "publish", flagPublishURL, "endpoint uri to publish")
	runCmd.Flags().StringVar(&flagTransferURL, "transfer", flagTransferURL, "endpoint uri of the wallet service holding the staked value")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	runCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	runCmd.Flags().StringVar(&flagOperationsLimit, "operations-limit", flagOperationsLimit, "operations limit in a envelope")
	runCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	runCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size")
	runCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "http cache redis address: <name>=<host>:<port> [ <name>=<host>:<port>...]")
	runCmd.Flags().BoolVar(&flagDebugPProf, "debug-pprof", flagDebugPProf, "set debug pprof")
	runCmd.Flags().StringVar(&flagNTPHost, "ntp-host", flagNTPHost, "ntp server to check the local clock against at startup")
	runCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for api: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M'")

	rootCmd.AddCommand(runCmd)
}

func parseFlagRateLimit(l cmdcommon.ListFlags, defaultRate limiter.Rate) (rule common.RateLimitRule, err error) {
	if len(l) < 1 {
		rule = common.NewRateLimitRule(defaultRate)
		return
	}

	var givenRate limiter.Rate

	byIPAddress := map[string]limiter.Rate{}
	for _, s := range l {
		sl := strings.SplitN(s, "=", 2)

		var ip, r string
		if len(sl) < 2 {
			r = s
		} else {
			ip = sl[0]
			r = sl[1]
		}

		if len(ip) > 0 {
			if net.ParseIP(ip) == nil {
				err = fmt.Errorf("invalid ip address: '%s'", ip)
				return
			}
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(r); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			givenRate = rate
		}
	}

	if givenRate.Period < 1 && givenRate.Limit < 1 {
		givenRate = defaultRate
	}

	rule = common.NewRateLimitRule(givenRate)
	rule.ByIPAddress = byIPAddress

	return
}

func parseFlagHTTPCacheRedisAddrs(addrs string) (map[string]string, error) {
	redisAddrs := map[string]string{}
	for _, s := range strings.Fields(addrs) {
		sl := strings.SplitN(s, "=", 2)
		if len(sl) != 2 || len(sl[0]) < 1 || len(sl[1]) < 1 {
			return nil, fmt.Errorf("redis address must be '<name>=<host>:<port>': '%s'", s)
		}
		redisAddrs[sl[0]] = sl[1]
	}

	return redisAddrs, nil
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(runCmd, "--network-id", errors.New("--network-id must be given"))
	}
	if len(flagKPSecretSeed) < 1 {
		cmdcommon.PrintFlagsError(runCmd, "--secret-seed", errors.New("must be given"))
	}
	if len(flagTransferURL) < 1 {
		cmdcommon.PrintFlagsError(runCmd, "--transfer", errors.New("must be given"))
	}

	var parsedKP keypair.KP
	if parsedKP, err = keypair.Parse(flagKPSecretSeed); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--secret-seed", err)
	}

	var full bool
	if kp, full = parsedKP.(*keypair.Full); !full {
		cmdcommon.PrintFlagsError(runCmd, "--secret-seed", errors.New("a public address was given, not a secret seed"))
	}

	if p, err := common.ParseEndpoint(flagBindURL); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--bind", err)
	} else {
		bindEndpoint = p
		flagBindURL = bindEndpoint.String()
	}

	queries := bindEndpoint.Query()
	queries.Add("IdleTimeout", "3s")

	if strings.ToLower(bindEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(runCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			cmdcommon.PrintFlagsError(runCmd, "--tls-key", err)
		}

		queries.Add("TLSCertFile", flagTLSCertFile)
		queries.Add("TLSKeyFile", flagTLSKeyFile)
	}

	bindEndpoint.RawQuery = queries.Encode()

	if len(flagPublishURL) > 0 {
		if p, err := common.ParseEndpoint(flagPublishURL); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--publish", err)
		} else {
			publishEndpoint = p
			flagPublishURL = publishEndpoint.String()
		}
	}

	if p, err := common.ParseEndpoint(flagTransferURL); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--transfer", err)
	} else {
		transferEndpoint = p
		flagTransferURL = transferEndpoint.String()
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}

	if operationsLimit, err = strconv.Atoi(flagOperationsLimit); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--operations-limit", err)
	}

	if rateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, common.RateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--rate-limit-api", err)
	}

	switch flagHTTPCacheAdapter {
	case "", common.HTTPCacheMemoryAdapterName:
	case common.HTTPCacheRedisAdapterName:
		if httpCacheRedisAddrs, err = parseFlagHTTPCacheRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--http-cache-redis-addrs", err)
		}
		if len(httpCacheRedisAddrs) < 1 {
			cmdcommon.PrintFlagsError(runCmd, "--http-cache-redis-addrs", errors.New("must be given with the redis adapter"))
		}
	default:
		cmdcommon.PrintFlagsError(runCmd, "--http-cache-adapter", fmt.Errorf("unknown adapter: '%s'", flagHTTPCacheAdapter))
	}

	if httpCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--http-cache-pool-size", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, logging.JsonFormat()); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--log-output", err)
		}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	common.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	transfer.SetLogging(logLevel, logHandler)

	runner.DebugPProf = flagDebugPProf

	log.Info("Starting stakegate")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tpublish", flagPublishURL)
	parsedFlags = append(parsedFlags, "\n\ttransfer", flagTransferURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\toperations-limit", flagOperationsLimit)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", rateLimitRuleAPI)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func runNode() {
	if len(flagNTPHost) > 0 {
		if err := common.CheckClockOffset(flagNTPHost); err != nil {
			log.Crit("local clock is out of sync", "ntp-host", flagNTPHost, "error", err)

			os.Exit(1)
		}
	}

	// create current Node
	localNode, err := node.NewLocalNode(kp, bindEndpoint, "")
	if err != nil {
		log.Error("failed to launch main node", "error", err)
		return
	}
	if publishEndpoint != nil {
		localNode.SetPublishEndpoint(publishEndpoint)
	}

	// create network
	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint(localNode.Alias(), bindEndpoint)
	if err != nil {
		log.Crit("failed to create network", "error", err)

		os.Exit(1)
	}
	nt := network.NewHTTP2Network(networkConfig)

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}

	agent, err := transfer.NewHTTPAgent(transferEndpoint, &common.RetrySetting{MaxRetries: 5})
	if err != nil {
		log.Crit("failed to create transfer agent", "error", err)

		os.Exit(1)
	}

	conf := common.NewConfig([]byte(flagNetworkID))
	conf.OpsLimit = operationsLimit
	conf.RateLimitRuleAPI = rateLimitRuleAPI
	conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	conf.HTTPCachePoolSize = httpCachePoolSize
	conf.HTTPCacheRedisAddrs = httpCacheRedisAddrs

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	// Execution group.
	var g run.Group
	{
		nr, err := runner.NewRunner(localNode, nt, runner.NewExecutor(st, agent, conf), st, conf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
