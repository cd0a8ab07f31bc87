/*Package ivl implements half-open integer intervals and disjoint interval
  sets, the coordinate plumbing shared by the CIGAR partitioner and the
  reconsensus gap-cluster detector.

  Intervals are [Lo, Hi) the way BED/BAM intervals are; a Set keeps its
  members sorted and disjoint, merging on insertion the way
  interval.BEDUnion merges overlapping BED records.
*/
package ivl
