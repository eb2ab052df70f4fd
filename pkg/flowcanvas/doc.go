/*
Package flowcanvas is the state core of a node-based editor for AI agent
pipelines.

# Overview

A Workflow is a directed graph of typed nodes (orchestrator, intent
classifier, agent, knowledge base, API endpoint, tool, output) joined by
edges. The package provides:

  - the data model (Workflow, Node, Edge) with deep Clone
  - ValidateConnection, the fixed allow-list policy for edges
  - Store, the session's single source of truth for the workflow and the
    current selection
  - History, linear snapshot-based undo/redo
  - graph queries (Roots, Reachable, FindCycle) and Audit for imported
    documents

# Basic Usage

	store := flowcanvas.NewStore()
	store.SetWorkflow(&flowcanvas.Workflow{ID: "wf-1", Name: "Support"})

	store.AddNode(flowcanvas.Node{ID: "A", Type: flowcanvas.Orchestrator})
	store.AddNode(flowcanvas.Node{ID: "B", Type: flowcanvas.Agent})
	store.SaveToHistory()

	_, v := store.Connect("A", "B", nil)
	if !v.IsValid {
	    fmt.Println(v.Reason, flowcanvas.ConnectionColor(false))
	}
	store.SaveToHistory()

	store.Undo() // edge gone
	store.Redo() // edge back

# Connection Rules

Checked in order, first failure wins:

 1. orchestrator and output nodes may not connect to themselves
 2. the target type must be in the source type's allow-list
 3. output nodes have no outgoing edges

	orchestrator      -> intent-classifier, agent, output
	intent-classifier -> agent, knowledge-base, output
	agent             -> tool, knowledge-base, api-endpoint, output
	knowledge-base    -> agent, output
	api-endpoint      -> agent, output
	tool              -> agent, output
	output            -> (none)

The rules are local to a type pair. agent -> api-endpoint -> agent is
allowed and forms an instance-level cycle; FindCycle reports it.

# No-op Commands

Store commands never return errors. Removing a missing node, editing with
no active workflow, or undoing at the start of history leaves state as it
was. The returned Result says which case applied.

# Observability

Pass WithLogger, WithMetrics and WithEventBus to NewStore. Every command
logs at debug level, counts as applied or no-op, and publishes an
event.Event when a bus is configured.
*/
package flowcanvas
