// flowdump-go: event flow and message dump suite
// Copyright (C) 2018  Yishen Miao
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

/*
genflow converts compiled event flows into flowchart graphs.

Every row of the resource CSV whose Name ends with .bfevfl is read from the
content directory, decoded by the decoder command and written to
<dest-dir>/<flow>.json. Once every flow is converted, <dest-dir>/__INDEX__.json
lists the flows sorted by name with their entry points and descriptions.

Descriptions come from the demo list first, then from the actor names.

The decoder command reads one event flow on standard input and writes
{"name": ..., "entry_points": [...], "graph": ...} to standard output.

Usage:
	genflow --content-dir DIR --resource-csv FILE --dest-dir DIR
		[--demo-list FILE] [--actor-names FILE] [--decoder CMD]

*/
package main
