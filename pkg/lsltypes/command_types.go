// Package lsltypes defines the shared data types of the LSL interpreter.
// This file contains the closed set of canonical command names that the
// dispatcher understands after keyword normalization.
package lsltypes

// Command is a canonical LSL command name.
type Command string

// Canonical command names. The set is closed: ParseCommand only ever returns
// one of these values.
const (
	CommandModel                Command = "model"
	CommandLayer                Command = "layer"
	CommandTrain                Command = "train"
	CommandPredict              Command = "predict"
	CommandSaveModel            Command = "saveModel"
	CommandLoadModel            Command = "loadModel"
	CommandEvaluateModel        Command = "evaluateModel"
	CommandVisualizeModel       Command = "visualizeModel"
	CommandCreateEnsemble       Command = "createEnsemble"
	CommandTransferWeights      Command = "transferWeights"
	CommandConfigureOptimizer   Command = "configureOptimizer"
	CommandHyperparameterTuning Command = "hyperparameterTuning"
	CommandModelExplanation     Command = "modelExplanation"
	CommandModelCompression     Command = "modelCompression"
	CommandModelDeployment      Command = "modelDeployment"
	CommandModelValidation      Command = "modelValidation"
	CommandModelMerge           Command = "modelMerge"
	CommandDatasetSplit         Command = "datasetSplit"
	CommandDataCleaning         Command = "dataCleaning"
	CommandDataAugmentation     Command = "dataAugmentation"
	CommandQuickStart           Command = "quickStart"
	CommandAutoTrain            Command = "autoTrain"
)

// PackageDirective is the leading token of a package import line.
const PackageDirective = "package.add"

var allCommands = []Command{
	CommandModel,
	CommandLayer,
	CommandTrain,
	CommandPredict,
	CommandSaveModel,
	CommandLoadModel,
	CommandEvaluateModel,
	CommandVisualizeModel,
	CommandCreateEnsemble,
	CommandTransferWeights,
	CommandConfigureOptimizer,
	CommandHyperparameterTuning,
	CommandModelExplanation,
	CommandModelCompression,
	CommandModelDeployment,
	CommandModelValidation,
	CommandModelMerge,
	CommandDatasetSplit,
	CommandDataCleaning,
	CommandDataAugmentation,
	CommandQuickStart,
	CommandAutoTrain,
}

// AllCommands returns every canonical command in declaration order.
// The returned slice is a copy.
func AllCommands() []Command {
	out := make([]Command, len(allCommands))
	copy(out, allCommands)
	return out
}

// ParseCommand matches a leading token exactly against the canonical command
// set. Prefix matches are never accepted, so "modelMerge" is not "model".
func ParseCommand(token string) (Command, bool) {
	for _, c := range allCommands {
		if string(c) == token {
			return c, true
		}
	}
	return "", false
}

// String returns the command name.
func (c Command) String() string {
	return string(c)
}
