// Package pkg provides the core libraries for Proofscope dependency analysis.
//
// # Overview
//
// Proofscope computes the structural skeleton of large dependency
// graphs, such as the theorem/definition graphs of formal mathematics
// libraries. The pkg directory is organized into five main areas:
//
//  1. [depgraph] - Graph structure and strongly connected component condensation
//  2. [analysis] - Structural analysis engine (layers, metrics, critical paths)
//  3. [graphio] - JSON serialization of graph documents
//  4. [cache] / [store] - Report caching and the archive store
//  5. [pipeline] - Orchestration (load → analyze → render)
//
// # Architecture
//
// The typical data flow through Proofscope:
//
//	Graph JSON document
//	         ↓
//	    [graphio] package (decode + validate)
//	         ↓
//	    [depgraph] package (graph structure + condensation)
//	         ↓
//	    [analysis] package (layers, metrics, critical path)
//	         ↓
//	    [render] package (DOT/SVG output)
//
// # Quick Start
//
// Load a graph and analyze its structure:
//
//	import (
//	    "github.com/proofscope/proofscope/pkg/analysis"
//	    "github.com/proofscope/proofscope/pkg/graphio"
//	)
//
//	// 1. Load the graph
//	g, _ := graphio.ReadFile("mathlib.json")
//
//	// 2. Analyze it (cycles are condensed automatically)
//	report := analysis.Analyze(g)
//
//	// 3. Use the results
//	fmt.Println(report.GraphDepth, report.CriticalPath)
//
// For caching, archiving, and rendering, use the [pipeline] package,
// which wires the engine to the [cache], [store], and [render]
// collaborators.
//
// [depgraph]: github.com/proofscope/proofscope/pkg/depgraph
// [analysis]: github.com/proofscope/proofscope/pkg/analysis
// [graphio]: github.com/proofscope/proofscope/pkg/graphio
// [cache]: github.com/proofscope/proofscope/pkg/cache
// [store]: github.com/proofscope/proofscope/pkg/store
// [pipeline]: github.com/proofscope/proofscope/pkg/pipeline
// [render]: github.com/proofscope/proofscope/pkg/render
package pkg
