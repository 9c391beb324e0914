package rules

import "sort"

// Info describes one built-in PSScriptAnalyzer rule known to this tool.
type Info struct {
	Name        string
	Category    Category
	Description string
}

// catalog maps rule names to their metadata. This is the static rule-name to
// category table: it is built once at init and never mutated afterwards.
var catalog = map[string]Info{}

func register(name string, category Category, description string) {
	catalog[name] = Info{Name: name, Category: category, Description: description}
}

func init() {
	// Security
	register("PSAvoidUsingPlainTextForPassword", CategorySecurity, "Password parameters should use SecureString, not plain text.")
	register("PSAvoidUsingConvertToSecureStringWithPlainText", CategorySecurity, "ConvertTo-SecureString with plain text exposes the secret in memory.")
	register("PSAvoidUsingUsernameAndPasswordParams", CategorySecurity, "Use a single Credential parameter instead of separate username and password parameters.")
	register("PSUsePSCredentialType", CategorySecurity, "Credential parameters should be typed as PSCredential.")
	register("PSAvoidUsingComputerNameHardcoded", CategorySecurity, "Hardcoded computer names leak environment details and hinder reuse.")
	register("PSAvoidUsingBrokenHashAlgorithms", CategorySecurity, "MD5 and SHA-1 are broken; use SHA256 or better.")
	register("PSAvoidUsingAllowUnencryptedAuthentication", CategorySecurity, "Unencrypted authentication sends credentials in the clear.")

	// Style
	register("PSAlignAssignmentStatement", CategoryStyle, "Align assignment statements in hashtables and DSC configurations.")
	register("PSUseConsistentIndentation", CategoryStyle, "Indentation should be consistent across the file.")
	register("PSUseConsistentWhitespace", CategoryStyle, "Whitespace around operators, braces, and separators should be consistent.")
	register("PSPlaceOpenBrace", CategoryStyle, "Open braces should follow the configured placement style.")
	register("PSPlaceCloseBrace", CategoryStyle, "Close braces should follow the configured placement style.")
	register("PSUseCorrectCasing", CategoryStyle, "Use the canonical casing for cmdlet and parameter names.")
	register("PSAvoidTrailingWhitespace", CategoryStyle, "Lines should not end with trailing whitespace.")
	register("PSAvoidSemicolonsAsLineTerminators", CategoryStyle, "PowerShell lines do not need terminating semicolons.")
	register("PSAvoidLongLines", CategoryStyle, "Keep lines under the configured maximum length.")
	register("PSAvoidUsingDoubleQuotesForConstantString", CategoryStyle, "Constant strings should use single quotes.")

	// Performance
	register("PSAvoidUsingInvokeExpression", CategoryPerformance, "Invoke-Expression re-parses its input and defeats static analysis.")
	register("PSUseProcessBlockForPipelineCommand", CategoryPerformance, "Commands that accept pipeline input should implement a process block.")
	register("PSAvoidAssignmentToAutomaticVariable", CategoryPerformance, "Assigning to automatic variables has surprising and costly side effects.")

	// Best practices
	register("PSAvoidUsingWriteHost", CategoryBestPractices, "Write-Host bypasses the output stream; prefer Write-Output or Write-Verbose.")
	register("PSUseApprovedVerbs", CategoryBestPractices, "Cmdlet names should use approved PowerShell verbs.")
	register("PSUseDeclaredVarsMoreThanAssignments", CategoryBestPractices, "Variables that are assigned but never used indicate dead code.")
	register("PSAvoidGlobalVars", CategoryBestPractices, "Global variables make scripts hard to reason about and test.")
	register("PSUseShouldProcessForStateChangingFunctions", CategoryBestPractices, "State-changing functions should support -WhatIf and -Confirm via ShouldProcess.")
	register("PSAvoidDefaultValueForMandatoryParameter", CategoryBestPractices, "Default values on mandatory parameters are never used.")
	register("PSUseSingularNouns", CategoryBestPractices, "Cmdlet nouns should be singular.")
	register("PSMissingModuleManifestField", CategoryBestPractices, "Module manifests should populate required fields.")
	register("PSReservedCmdletChar", CategoryBestPractices, "Cmdlet names must not contain reserved characters.")
	register("PSReservedParams", CategoryBestPractices, "Do not redefine reserved common parameter names.")
	register("PSAvoidUsingPositionalParameters", CategoryBestPractices, "Named parameters are clearer than positional ones in scripts.")
	register("PSAvoidUsingCmdletAliases", CategoryBestPractices, "Aliases are fine interactively but hurt script readability.")
	register("PSUseCmdletCorrectly", CategoryBestPractices, "Cmdlets should be invoked with their mandatory parameters.")
	register("PSUseOutputTypeCorrectly", CategoryBestPractices, "Declared OutputType attributes should match what the function emits.")

	// DSC
	register("PSDSCDscExamplesPresent", CategoryDSC, "DSC resources should ship usage examples.")
	register("PSDSCDscTestsPresent", CategoryDSC, "DSC resources should ship tests.")
	register("PSDSCReturnCorrectTypesForDSCFunctions", CategoryDSC, "Get/Set/Test-TargetResource must return the documented types.")
	register("PSDSCStandardDSCFunctionsInResource", CategoryDSC, "DSC resources must implement the standard Get/Set/Test functions.")
	register("PSDSCUseIdenticalMandatoryParametersForDSC", CategoryDSC, "Mandatory parameters must match across DSC resource functions.")
	register("PSDSCUseIdenticalParametersForDSC", CategoryDSC, "Parameters must match across DSC resource functions.")
	register("PSDSCUseVerboseMessageInDSCResource", CategoryDSC, "DSC resource functions should emit verbose progress messages.")

	// Compatibility
	register("PSUseCompatibleCmdlets", CategoryCompatibility, "Flag cmdlets unavailable on the targeted PowerShell platforms.")
	register("PSUseCompatibleCommands", CategoryCompatibility, "Flag commands unavailable on the targeted PowerShell platforms.")
	register("PSUseCompatibleSyntax", CategoryCompatibility, "Flag syntax unavailable in the targeted PowerShell versions.")
	register("PSUseCompatibleTypes", CategoryCompatibility, "Flag types unavailable on the targeted PowerShell platforms.")
	register("PSAvoidUsingWMICmdlet", CategoryCompatibility, "WMI cmdlets are Windows-only; prefer CIM cmdlets.")
}

// Lookup returns catalog metadata for a rule name.
func Lookup(name string) (Info, bool) {
	info, ok := catalog[name]
	return info, ok
}

// List returns all catalog entries sorted by rule name.
func List() []Info {
	out := make([]Info, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListByCategory returns catalog entries in the given category, sorted by name.
func ListByCategory(c Category) []Info {
	var out []Info
	for _, info := range List() {
		if info.Category == c {
			out = append(out, info)
		}
	}
	return out
}
