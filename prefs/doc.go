// This file is part of Copperbars.
//
// Copperbars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Copperbars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Copperbars.  If not, see <https://www.gnu.org/licenses/>.

// Package prefs facilitates the persistence of user preferences. Preference
// values are typed (Bool, Int and String) and are added to a Disk instance
// under a key. The Disk instance can then Save() and Load() the values.
//
// Preference files are plain text with one "key :: value" entry per line.
// Entries in the file that are not known to the Disk instance are preserved
// when the file is saved.
//
// Preferences can also be specified on the command line. The
// PushCommandLineStack() function takes a string of the form
// "key::value; key::value" and values in that group take precedence over
// values loaded from disk the next time Load() is called.
package prefs
