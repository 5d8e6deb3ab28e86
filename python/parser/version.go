package parser

import (
	"fmt"
	"strings"
)

// LanguageVersion selects the grammar variant.
type LanguageVersion int

const (
	V24 LanguageVersion = iota
	V25
	V26
	V27
	V30
	V31
	V32
	V33
)

const DefaultVersion = V27

var versionNames = map[LanguageVersion]string{
	V24: "2.4",
	V25: "2.5",
	V26: "2.6",
	V27: "2.7",
	V30: "3.0",
	V31: "3.1",
	V32: "3.2",
	V33: "3.3",
}

func (v LanguageVersion) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return "unknown"
}

func (v LanguageVersion) Is2x() bool {
	return v <= V27
}

func (v LanguageVersion) Is3x() bool {
	return v >= V30
}

func ParseVersion(s string) (LanguageVersion, error) {
	s = strings.TrimSpace(s)
	for v, name := range versionNames {
		if name == s {
			return v, nil
		}
	}
	return DefaultVersion, fmt.Errorf("unsupported language version %q", s)
}

// FutureOptions records the __future__ features a module turned on.
type FutureOptions int

const (
	FutureTrueDivision FutureOptions = 1 << iota
	FutureWithStatement
	FutureAbsoluteImports
	FuturePrintFunction
	FutureUnicodeLiterals
)

func (f FutureOptions) Has(o FutureOptions) bool {
	return f&o != 0
}

type futureFeature struct {
	option  FutureOptions
	minimum LanguageVersion
}

// futureFeatures maps the names accepted after "from __future__ import".
// A zero option marks a feature that is always on.
var futureFeatures = map[string]futureFeature{
	"nested_scopes":    {0, V24},
	"generators":       {0, V24},
	"division":         {FutureTrueDivision, V24},
	"with_statement":   {FutureWithStatement, V25},
	"absolute_import":  {FutureAbsoluteImports, V25},
	"print_function":   {FuturePrintFunction, V26},
	"unicode_literals": {FutureUnicodeLiterals, V26},
}

// Feature is a grammar capability that depends on the version or on
// __future__ imports.
type Feature int

const (
	FeaturePrintStatement Feature = iota
	FeatureExecStatement
	FeatureWithStatement
	FeatureExceptAs
	FeatureExceptComma
	FeatureRaiseComma
	FeatureRaiseFrom
	FeatureClassDecorators
	FeatureClassKeywords
	FeatureSetLiterals
	FeatureDictComprehension
	FeatureBareYield
	FeatureStarTargets
	FeatureKeywordOnlyParameters
	FeatureAnnotations
	FeatureNonlocal
	FeatureSublistParameters
	FeatureBackQuote
	FeatureLessGreater
	FeatureEllipsisLiteral
	FeatureReturnInGenerator
	FeatureTrueDivision
	FeatureUnicodeLiterals
	FeatureBytesMixing
	FeatureImportStarInFunction
	FeatureLongIntegers
	FeatureOctalLegacy
	FeatureTrueFalseKeywords
)

var featureNames = map[Feature]string{
	FeaturePrintStatement:        "print statement",
	FeatureExecStatement:         "exec statement",
	FeatureWithStatement:         "with statement",
	FeatureExceptAs:              "'except ... as'",
	FeatureExceptComma:           "'except X, e'",
	FeatureRaiseComma:            "'raise X, Y'",
	FeatureRaiseFrom:             "'raise ... from'",
	FeatureClassDecorators:       "class decorators",
	FeatureClassKeywords:         "class keyword arguments",
	FeatureSetLiterals:           "set literals",
	FeatureDictComprehension:     "dict and set comprehensions",
	FeatureBareYield:             "yield expressions",
	FeatureStarTargets:           "starred assignment targets",
	FeatureKeywordOnlyParameters: "keyword-only parameters",
	FeatureAnnotations:           "annotations",
	FeatureNonlocal:              "nonlocal statement",
	FeatureSublistParameters:     "sublist parameters",
	FeatureBackQuote:             "backquote repr",
	FeatureLessGreater:           "'<>' operator",
	FeatureEllipsisLiteral:       "'...' outside of a subscript",
	FeatureReturnInGenerator:     "'return' with a value inside a generator",
	FeatureTrueDivision:          "true division",
	FeatureUnicodeLiterals:       "unicode literals",
	FeatureBytesMixing:           "mixing bytes and text literals",
	FeatureImportStarInFunction:  "'import *' inside a function",
	FeatureLongIntegers:          "long integer suffix",
	FeatureOctalLegacy:           "legacy octal literals",
	FeatureTrueFalseKeywords:     "True and False keywords",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return "unknown feature"
}

// Enabled decides whether the feature is available for a version with the
// given __future__ options. It is the only place version checks live.
func (f Feature) Enabled(v LanguageVersion, future FutureOptions) bool {
	switch f {
	case FeaturePrintStatement:
		return v.Is2x() && !future.Has(FuturePrintFunction)
	case FeatureExecStatement, FeatureExceptComma, FeatureRaiseComma,
		FeatureSublistParameters, FeatureBackQuote, FeatureLessGreater,
		FeatureBytesMixing, FeatureImportStarInFunction, FeatureLongIntegers,
		FeatureOctalLegacy:
		return v.Is2x()
	case FeatureWithStatement:
		return v >= V26 || future.Has(FutureWithStatement)
	case FeatureExceptAs, FeatureClassDecorators:
		return v >= V26
	case FeatureSetLiterals, FeatureDictComprehension:
		return v >= V27
	case FeatureBareYield:
		return v >= V25
	case FeatureRaiseFrom, FeatureClassKeywords, FeatureStarTargets,
		FeatureKeywordOnlyParameters, FeatureAnnotations, FeatureNonlocal,
		FeatureEllipsisLiteral, FeatureTrueFalseKeywords:
		return v.Is3x()
	case FeatureReturnInGenerator:
		return v >= V33
	case FeatureTrueDivision:
		return v.Is3x() || future.Has(FutureTrueDivision)
	case FeatureUnicodeLiterals:
		return v.Is3x() || future.Has(FutureUnicodeLiterals)
	}
	return false
}

// requirement describes the versions that support f, for diagnostics.
func (f Feature) requirement() string {
	switch f {
	case FeaturePrintStatement:
		return "print statement is not supported in 3.x or with 'from __future__ import print_function'; use print()"
	case FeatureExecStatement:
		return "exec statement is not supported in 3.x; use exec()"
	case FeatureWithStatement:
		return "with statement requires 2.6 or 'from __future__ import with_statement'"
	case FeatureExceptAs:
		return "'as' requires Python 2.6 or later"
	case FeatureExceptComma:
		return "\", variable\" not allowed in 3.x - use \"as variable\" instead."
	case FeatureRaiseComma:
		return "invalid syntax, only exception value is allowed in 3.x."
	case FeatureRaiseFrom:
		return "invalid syntax, from cause not allowed in 2.x."
	case FeatureClassDecorators:
		return "invalid syntax, class decorators require 2.6 or later."
	case FeatureClassKeywords:
		return "invalid syntax, class keyword arguments require 3.x"
	case FeatureSetLiterals:
		return "invalid syntax, set literals require Python 2.7 or later."
	case FeatureDictComprehension:
		return "invalid syntax, dictionary comprehensions require Python 2.7 or later."
	case FeatureBareYield:
		return "invalid syntax, yield requires a value before 2.5"
	case FeatureStarTargets:
		return "invalid syntax, starred assignment targets require 3.x"
	case FeatureKeywordOnlyParameters:
		return "positional parameter after * args not allowed"
	case FeatureAnnotations:
		return "invalid syntax, parameter annotations require 3.x"
	case FeatureNonlocal:
		return "invalid syntax, nonlocal requires 3.x"
	case FeatureSublistParameters:
		return "sublist parameters are not supported in 3.x"
	case FeatureBackQuote:
		return "backquote repr is not supported in 3.x; use repr()"
	case FeatureLessGreater:
		return "'<>' is not supported in 3.x; use '!='"
	case FeatureEllipsisLiteral:
		return "invalid syntax, '...' is only allowed in subscripts before 3.x"
	}
	return "invalid syntax, " + f.String() + " not supported in this version"
}
