package cmd

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	cmdcommon "stakegate.io/stakegate/cmd/stakegate/common"
	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/keypair"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/storage"
)

const defaultGlobalRequirement = "10,000"

var (
	flagRequirement string = common.GetENVValue("SG_GENESIS_REQUIREMENT", defaultGlobalRequirement)
	flagGenesisDoc  string
)

// GenesisDoc is the yaml bootstrap document `genesis --doc` accepts as
// an alternative to flags. Explicit flags win over the document.
type GenesisDoc struct {
	Administrator     string `yaml:"administrator"`
	GlobalRequirement string `yaml:"global_requirement"`
	Storage           string `yaml:"storage"`
}

func init() {
	var genesisCmd = &cobra.Command{
		Use:   "genesis <administrator public key>",
		Short: "initialize a new registry",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			var address string
			if len(args) == 1 {
				address = args[0]
			}

			if len(flagGenesisDoc) != 0 {
				doc, err := readGenesisDoc(flagGenesisDoc)
				if err != nil {
					cmdcommon.PrintFlagsError(c, "--doc", err)
				}
				if len(address) == 0 {
					address = doc.Administrator
				}
				if !c.Flags().Changed("requirement") && len(doc.GlobalRequirement) != 0 {
					flagRequirement = doc.GlobalRequirement
				}
				if !c.Flags().Changed("storage") && len(doc.Storage) != 0 {
					flagStorageConfigString = doc.Storage
				}
			}

			if len(address) == 0 {
				cmdcommon.PrintFlagsError(c, "<administrator public key>", errors.New("must be given"))
			}

			flagName, err := MakeGenesisState(address, flagRequirement, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully initialized the registry")
		},
	}

	genesisCmd.Flags().StringVar(&flagRequirement, "requirement", flagRequirement, "initial global stake requirement")
	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	genesisCmd.Flags().StringVar(&flagGenesisDoc, "doc", flagGenesisDoc, "yaml bootstrap document")

	rootCmd.AddCommand(genesisCmd)
}

func readGenesisDoc(path string) (doc GenesisDoc, err error) {
	var b []byte
	if b, err = ioutil.ReadFile(path); err != nil {
		return
	}
	err = yaml.Unmarshal(b, &doc)
	return
}

//
// Write the initial registry state using the provided parameters
//
// This function is separate, and public, to allow it to be used from
// `run --genesis` so both paths share defaults and error messages.
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represents the name of the flag which errored,
//   and error is the more detailed error.
//   Note that only one needs be non-`nil` for it to be considered an error.
//
func MakeGenesisState(addressStr, requirementStr, storageString string) (string, error) {
	var err error
	var kp keypair.KP
	var required common.Amount
	var storageConfig *storage.Config

	if kp, err = keypair.Parse(addressStr); err != nil {
		return "<administrator public key>", err
	}

	if len(requirementStr) == 0 {
		requirementStr = defaultGlobalRequirement
	}

	if required, err = cmdcommon.ParseAmountFromString(requirementStr); err != nil {
		return "--requirement", err
	}

	// Use the default value
	if len(storageString) == 0 {
		// We try to get the env value first, before doing IO which could fail
		storageString = common.GetENVValue("SG_STORAGE", "")
		// No env, use the default (current directory)
		if len(storageString) == 0 {
			if currentDirectory, err := os.Getwd(); err == nil {
				if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
					storageString = fmt.Sprintf("file://%s/db", currentDirectory)
				}
			}
			if len(storageString) == 0 {
				return "--storage", err
			}
		}
	}

	if storageConfig, err = storage.NewConfigFromString(storageString); err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer st.Close()

	if _, err = ledger.MakeGenesis(st, kp.Address(), required); err != nil {
		return "<administrator public key>", err
	}

	return "", nil
}
