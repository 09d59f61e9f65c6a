/*
Package gokafka is a low level library for the two hardest pieces of a Kafka
client: the wire-protocol codec and the consumer offset manager. It is not
modeled on the Java client.


Project Scope

The library implements enough of the Kafka wire protocol to decode the
pre-KIP-98 Message/MessageSet format and to speak the OffsetCommit,
OffsetFetch, and Offset (ListOffsets) APIs, and uses that to run a
concurrent offset manager: batching commits, fetching committed offsets
with an earliest-offset fallback, fenced by a member-id/generation-id pair.
Cluster metadata discovery, consumer group membership, produce/fetch, and
ZooKeeper/Consul integration are out of scope; package client goes only as
far as obtaining the two connections the offset manager's contract needs.


Get Started

Read the documentation for the "offsetmanager" and "client" packages, or run
cmd/offsetctl against a broker.


Design Decisions

1. One actor per group/topic. The offset manager is a single goroutine
reached only through channels; callers never touch its state directly.
This makes the last-write-wins buffering and the one-slot flush timer
straightforward to reason about without locks.

2. Synchronous single-partition-leader calls. Like the upstream wire
protocol this client borrows its connection-per-RPC model from: the offset
manager never pools or multiplexes connections itself. A coordinator
connection is owned for the manager's lifetime; a leader connection for the
earliest-offset fallback is borrowed per call and never closed by the
manager.

3. Wide use of reflection. Request and response structs are marshaled with
a small reflection-based struct walker in package wire. This is fine
because offset commits and fetches are not a hot path; record encoding
(where performance does matter) is done with explicit, non-reflective
primitive calls.

4. Limited use of data hiding. Most internal structures are exposed to make
debugging and metrics collection easier.
*/
package gokafka
